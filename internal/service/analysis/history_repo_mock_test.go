package analysis

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/summarizer-backend/internal/domain"
)

var _ historyRepo = &historyRepoMock{}

type historyRepoMock struct {
	CountByOwnerFunc       func(ctx context.Context, subjectID string) (int, error)
	DeleteByOwnerAndIDFunc func(ctx context.Context, subjectID string, id uuid.UUID) (bool, error)
	InsertFunc             func(ctx context.Context, rec domain.AnalysisRecord) (uuid.UUID, error)
	ListByOwnerFunc        func(ctx context.Context, subjectID string, limit int, offset int) ([]domain.AnalysisRecord, error)

	calls struct {
		CountByOwner []struct {
			Ctx       context.Context
			SubjectID string
		}
		DeleteByOwnerAndID []struct {
			Ctx       context.Context
			SubjectID string
			Id        uuid.UUID
		}
		Insert []struct {
			Ctx context.Context
			Rec domain.AnalysisRecord
		}
		ListByOwner []struct {
			Ctx       context.Context
			SubjectID string
			Limit     int
			Offset    int
		}
	}
	lockCountByOwner       sync.RWMutex
	lockDeleteByOwnerAndID sync.RWMutex
	lockInsert             sync.RWMutex
	lockListByOwner        sync.RWMutex
}

func (mock *historyRepoMock) CountByOwner(ctx context.Context, subjectID string) (int, error) {
	if mock.CountByOwnerFunc == nil {
		panic("historyRepoMock.CountByOwnerFunc: method is nil but historyRepo.CountByOwner was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		SubjectID string
	}{Ctx: ctx, SubjectID: subjectID}
	mock.lockCountByOwner.Lock()
	mock.calls.CountByOwner = append(mock.calls.CountByOwner, callInfo)
	mock.lockCountByOwner.Unlock()
	return mock.CountByOwnerFunc(ctx, subjectID)
}

func (mock *historyRepoMock) CountByOwnerCalls() []struct {
	Ctx       context.Context
	SubjectID string
} {
	mock.lockCountByOwner.RLock()
	calls := mock.calls.CountByOwner
	mock.lockCountByOwner.RUnlock()
	return calls
}

func (mock *historyRepoMock) DeleteByOwnerAndID(ctx context.Context, subjectID string, id uuid.UUID) (bool, error) {
	if mock.DeleteByOwnerAndIDFunc == nil {
		panic("historyRepoMock.DeleteByOwnerAndIDFunc: method is nil but historyRepo.DeleteByOwnerAndID was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		SubjectID string
		Id        uuid.UUID
	}{Ctx: ctx, SubjectID: subjectID, Id: id}
	mock.lockDeleteByOwnerAndID.Lock()
	mock.calls.DeleteByOwnerAndID = append(mock.calls.DeleteByOwnerAndID, callInfo)
	mock.lockDeleteByOwnerAndID.Unlock()
	return mock.DeleteByOwnerAndIDFunc(ctx, subjectID, id)
}

func (mock *historyRepoMock) DeleteByOwnerAndIDCalls() []struct {
	Ctx       context.Context
	SubjectID string
	Id        uuid.UUID
} {
	mock.lockDeleteByOwnerAndID.RLock()
	calls := mock.calls.DeleteByOwnerAndID
	mock.lockDeleteByOwnerAndID.RUnlock()
	return calls
}

func (mock *historyRepoMock) Insert(ctx context.Context, rec domain.AnalysisRecord) (uuid.UUID, error) {
	if mock.InsertFunc == nil {
		panic("historyRepoMock.InsertFunc: method is nil but historyRepo.Insert was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Rec domain.AnalysisRecord
	}{Ctx: ctx, Rec: rec}
	mock.lockInsert.Lock()
	mock.calls.Insert = append(mock.calls.Insert, callInfo)
	mock.lockInsert.Unlock()
	return mock.InsertFunc(ctx, rec)
}

func (mock *historyRepoMock) InsertCalls() []struct {
	Ctx context.Context
	Rec domain.AnalysisRecord
} {
	mock.lockInsert.RLock()
	calls := mock.calls.Insert
	mock.lockInsert.RUnlock()
	return calls
}

func (mock *historyRepoMock) ListByOwner(ctx context.Context, subjectID string, limit int, offset int) ([]domain.AnalysisRecord, error) {
	if mock.ListByOwnerFunc == nil {
		panic("historyRepoMock.ListByOwnerFunc: method is nil but historyRepo.ListByOwner was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		SubjectID string
		Limit     int
		Offset    int
	}{Ctx: ctx, SubjectID: subjectID, Limit: limit, Offset: offset}
	mock.lockListByOwner.Lock()
	mock.calls.ListByOwner = append(mock.calls.ListByOwner, callInfo)
	mock.lockListByOwner.Unlock()
	return mock.ListByOwnerFunc(ctx, subjectID, limit, offset)
}

func (mock *historyRepoMock) ListByOwnerCalls() []struct {
	Ctx       context.Context
	SubjectID string
	Limit     int
	Offset    int
} {
	mock.lockListByOwner.RLock()
	calls := mock.calls.ListByOwner
	mock.lockListByOwner.RUnlock()
	return calls
}
