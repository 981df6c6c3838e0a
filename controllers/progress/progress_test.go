package progressController

import (
	"testing"

	"edumart/database"
	courseModels "edumart/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}
	return db
}

func seedCourseWithContents(t *testing.T, db *gorm.DB, contentCount int) (courseModels.Course, []courseModels.CourseContent) {
	course := courseModels.Course{Title: "Go Basics", Price: 0, CategoryID: 1, TeacherID: 1, IsPublished: true, Status: "ACTIVE"}
	require.NoError(t, db.Create(&course).Error)

	module := courseModels.Module{CourseID: course.ID, Title: "Intro"}
	require.NoError(t, db.Create(&module).Error)

	contents := make([]courseModels.CourseContent, contentCount)
	for i := range contents {
		contents[i] = courseModels.CourseContent{
			CourseID:    course.ID,
			ModuleID:    module.ID,
			Title:       "Lesson",
			ContentType: courseModels.ContentVideo,
			OrderIndex:  i,
			IsPublished: true,
		}
		require.NoError(t, db.Create(&contents[i]).Error)
	}
	return course, contents
}

func seedEnrollment(t *testing.T, db *gorm.DB, userID, courseID uint) *courseModels.Enrollment {
	enrollment := courseModels.Enrollment{UserID: userID, CourseID: courseID}
	require.NoError(t, db.Create(&enrollment).Error)
	return &enrollment
}

func markComplete(t *testing.T, db *gorm.DB, enrollment *courseModels.Enrollment, content courseModels.CourseContent) {
	row := courseModels.ContentProgress{
		EnrollmentID: enrollment.ID,
		ContentID:    content.ID,
		UserID:       enrollment.UserID,
		CourseID:     enrollment.CourseID,
	}
	require.NoError(t, db.Create(&row).Error)
	require.NoError(t, RecomputeEnrollmentProgress(db, enrollment))
}

func TestComputeProgressRounding(t *testing.T) {
	db := setupTestDB(t)
	course, contents := seedCourseWithContents(t, db, 3)
	enrollment := seedEnrollment(t, db, 1, course.ID)

	assert.Equal(t, 0, ComputeProgress(db, enrollment.ID, course.ID))

	markComplete(t, db, enrollment, contents[0])
	assert.Equal(t, 33, ComputeProgress(db, enrollment.ID, course.ID))

	markComplete(t, db, enrollment, contents[1])
	assert.Equal(t, 67, ComputeProgress(db, enrollment.ID, course.ID))
}

func TestComputeProgressEmptyCourse(t *testing.T) {
	db := setupTestDB(t)
	course, _ := seedCourseWithContents(t, db, 0)
	enrollment := seedEnrollment(t, db, 1, course.ID)

	assert.Equal(t, 0, ComputeProgress(db, enrollment.ID, course.ID))
}

func TestRecomputeSetsAndClearsCompletedAt(t *testing.T) {
	db := setupTestDB(t)
	course, contents := seedCourseWithContents(t, db, 2)
	enrollment := seedEnrollment(t, db, 1, course.ID)

	markComplete(t, db, enrollment, contents[0])
	assert.Equal(t, 50, enrollment.Progress)
	assert.Nil(t, enrollment.CompletedAt)

	markComplete(t, db, enrollment, contents[1])
	assert.Equal(t, 100, enrollment.Progress)
	assert.NotNil(t, enrollment.CompletedAt)

	// Unmarking drops below 100 and clears the timestamp
	require.NoError(t, db.Unscoped().
		Where("enrollment_id = ? AND content_id = ?", enrollment.ID, contents[1].ID).
		Delete(&courseModels.ContentProgress{}).Error)
	require.NoError(t, RecomputeEnrollmentProgress(db, enrollment))

	assert.Equal(t, 50, enrollment.Progress)
	assert.Nil(t, enrollment.CompletedAt)

	var stored courseModels.Enrollment
	require.NoError(t, db.First(&stored, enrollment.ID).Error)
	assert.Equal(t, 50, stored.Progress)
	assert.Nil(t, stored.CompletedAt)
}

func TestRecomputeIgnoresStaleCompletions(t *testing.T) {
	db := setupTestDB(t)
	course, contents := seedCourseWithContents(t, db, 2)
	enrollment := seedEnrollment(t, db, 1, course.ID)

	markComplete(t, db, enrollment, contents[0])
	markComplete(t, db, enrollment, contents[1])
	require.Equal(t, 100, enrollment.Progress)

	// Unpublishing completed content leaves a completion row behind; it
	// must stop counting rather than push the percentage past 100
	require.NoError(t, db.Model(&courseModels.CourseContent{}).
		Where("id = ?", contents[1].ID).Update("is_published", false).Error)
	require.NoError(t, RecomputeEnrollmentProgress(db, enrollment))

	assert.Equal(t, 100, enrollment.Progress)
	assert.LessOrEqual(t, enrollment.Progress, 100)
	assert.NotNil(t, enrollment.CompletedAt)

	// Deleting the only remaining completed item drops progress to zero
	require.NoError(t, db.Model(&courseModels.CourseContent{}).
		Where("id = ?", contents[0].ID).Update("is_deleted", true).Error)
	require.NoError(t, RecomputeEnrollmentProgress(db, enrollment))

	assert.Equal(t, 0, enrollment.Progress)
	assert.Nil(t, enrollment.CompletedAt)
}

func TestRecomputeTracksNewlyPublishedContent(t *testing.T) {
	db := setupTestDB(t)
	course, contents := seedCourseWithContents(t, db, 1)
	enrollment := seedEnrollment(t, db, 1, course.ID)

	markComplete(t, db, enrollment, contents[0])
	assert.Equal(t, 100, enrollment.Progress)

	// Publishing more content dilutes the percentage on the next recompute
	extra := courseModels.CourseContent{
		CourseID:    course.ID,
		ModuleID:    contents[0].ModuleID,
		Title:       "New lesson",
		ContentType: courseModels.ContentVideo,
		IsPublished: true,
	}
	require.NoError(t, db.Create(&extra).Error)
	require.NoError(t, RecomputeEnrollmentProgress(db, enrollment))

	assert.Equal(t, 50, enrollment.Progress)
	assert.Nil(t, enrollment.CompletedAt)
}
