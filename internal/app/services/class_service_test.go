package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerem/schoolhub/internal/app/models"
	"github.com/kerem/schoolhub/internal/pkg/apperrors"
)

func newClassFixture() (*ClassService, *memClassStore, *memActivityStore) {
	classes := newMemClassStore(&models.Class{ID: 1, Name: "Grade 5", StudentCount: 2})
	activityStore := &memActivityStore{}
	activity := NewActivityService(activityStore, nil, fixedNow)
	return NewClassService(classes, activity), classes, activityStore
}

func TestCreateClass(t *testing.T) {
	svc, _, activityStore := newClassFixture()

	class, err := svc.CreateClass(context.Background(), "  Grade 6  ")
	require.NoError(t, err)
	assert.NotZero(t, class.ID)
	assert.Equal(t, "Grade 6", class.Name)

	require.Len(t, activityStore.entries, 1)
	assert.Equal(t, "class", activityStore.entries[0].Kind)
}

func TestCreateClassEmptyName(t *testing.T) {
	svc, _, _ := newClassFixture()

	_, err := svc.CreateClass(context.Background(), "   ")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestCreateClassDuplicateName(t *testing.T) {
	svc, _, _ := newClassFixture()

	_, err := svc.CreateClass(context.Background(), "Grade 5")
	assert.ErrorIs(t, err, apperrors.ErrClassAlreadyExists)
}

func TestRenameClass(t *testing.T) {
	svc, _, _ := newClassFixture()

	class, err := svc.RenameClass(context.Background(), 1, "Grade 5 Blue")
	require.NoError(t, err)
	assert.Equal(t, "Grade 5 Blue", class.Name)

	_, err = svc.RenameClass(context.Background(), 99, "Grade 7")
	assert.ErrorIs(t, err, apperrors.ErrClassNotFound)

	_, err = svc.RenameClass(context.Background(), 1, " ")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestDeleteClass(t *testing.T) {
	svc, classes, activityStore := newClassFixture()

	require.NoError(t, svc.DeleteClass(context.Background(), 1))
	_, err := classes.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, apperrors.ErrClassNotFound)

	require.Len(t, activityStore.entries, 1)
	assert.Contains(t, activityStore.entries[0].Message, "Grade 5")

	assert.ErrorIs(t, svc.DeleteClass(context.Background(), 99), apperrors.ErrClassNotFound)
}

func TestGetClasses(t *testing.T) {
	svc, _, _ := newClassFixture()

	list, err := svc.GetClasses(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].StudentCount)
}
