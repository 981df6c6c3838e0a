package utils

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

// GenerateOrderID builds the payment correlation id sent to the gateway
func GenerateOrderID() string {
	return "ENR-" + uuid.NewString()
}

// GenerateSerialNumber builds a certificate serial
func GenerateSerialNumber(courseID uint) string {
	short := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("CERT-%d-%s", courseID, strings.ToUpper(short))
}

// Round2 rounds to two decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
