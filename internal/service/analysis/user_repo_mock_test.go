package analysis

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/summarizer-backend/internal/domain"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	UpsertFunc func(ctx context.Context, p domain.Principal, at time.Time) (domain.UserProfile, error)

	calls struct {
		Upsert []struct {
			Ctx context.Context
			P   domain.Principal
			At  time.Time
		}
	}
	lockUpsert sync.RWMutex
}

func (mock *userRepoMock) Upsert(ctx context.Context, p domain.Principal, at time.Time) (domain.UserProfile, error) {
	if mock.UpsertFunc == nil {
		panic("userRepoMock.UpsertFunc: method is nil but userRepo.Upsert was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   domain.Principal
		At  time.Time
	}{Ctx: ctx, P: p, At: at}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, callInfo)
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, p, at)
}

func (mock *userRepoMock) UpsertCalls() []struct {
	Ctx context.Context
	P   domain.Principal
	At  time.Time
} {
	mock.lockUpsert.RLock()
	calls := mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
}
