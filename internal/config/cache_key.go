package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// TeacherSessionKey returns the cache key holding a teacher's active session JTI.
func (r *CacheKeyStruct) TeacherSessionKey(teacherID int) string {
	return fmt.Sprintf("login:%d", teacherID)
}

// QuestionDraftKey returns the cache key for a teacher's autosaved question draft.
func (r *CacheKeyStruct) QuestionDraftKey(teacherID int, draftID string) string {
	return fmt.Sprintf("teacher:%d:draft:%s", teacherID, draftID)
}

// SheetStatusKey returns the cache key mirroring an answer sheet's latest status.
func (r *CacheKeyStruct) SheetStatusKey(sheetID string) string {
	return fmt.Sprintf("sheet:%s:status", sheetID)
}

// SheetProgressChannel returns the Redis PubSub channel carrying processing
// progress events for an answer sheet.
func (r *CacheKeyStruct) SheetProgressChannel(sheetID string) string {
	return fmt.Sprintf("sheet:%s:progress", sheetID)
}

var CacheKey = NewCacheKeyStruct()
