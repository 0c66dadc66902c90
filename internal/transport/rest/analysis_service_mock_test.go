package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/summarizer-backend/internal/domain"
	"github.com/heartmarshall/summarizer-backend/internal/service/analysis"
)

var _ analysisService = &analysisServiceMock{}

type analysisServiceMock struct {
	AnalyzeFunc       func(ctx context.Context, input analysis.AnalyzeInput) (*analysis.AnalyzeResult, error)
	DeleteHistoryFunc func(ctx context.Context, id string) error
	ListHistoryFunc   func(ctx context.Context, input analysis.ListHistoryInput) ([]domain.AnalysisRecord, error)
	ProfileFunc       func(ctx context.Context) (*analysis.ProfileResult, error)

	calls struct {
		Analyze []struct {
			Ctx   context.Context
			Input analysis.AnalyzeInput
		}
		DeleteHistory []struct {
			Ctx context.Context
			Id  string
		}
		ListHistory []struct {
			Ctx   context.Context
			Input analysis.ListHistoryInput
		}
		Profile []struct {
			Ctx context.Context
		}
	}
	lockAnalyze       sync.RWMutex
	lockDeleteHistory sync.RWMutex
	lockListHistory   sync.RWMutex
	lockProfile       sync.RWMutex
}

func (mock *analysisServiceMock) Analyze(ctx context.Context, input analysis.AnalyzeInput) (*analysis.AnalyzeResult, error) {
	if mock.AnalyzeFunc == nil {
		panic("analysisServiceMock.AnalyzeFunc: method is nil but analysisService.Analyze was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input analysis.AnalyzeInput
	}{Ctx: ctx, Input: input}
	mock.lockAnalyze.Lock()
	mock.calls.Analyze = append(mock.calls.Analyze, callInfo)
	mock.lockAnalyze.Unlock()
	return mock.AnalyzeFunc(ctx, input)
}

func (mock *analysisServiceMock) AnalyzeCalls() []struct {
	Ctx   context.Context
	Input analysis.AnalyzeInput
} {
	mock.lockAnalyze.RLock()
	calls := mock.calls.Analyze
	mock.lockAnalyze.RUnlock()
	return calls
}

func (mock *analysisServiceMock) DeleteHistory(ctx context.Context, id string) error {
	if mock.DeleteHistoryFunc == nil {
		panic("analysisServiceMock.DeleteHistoryFunc: method is nil but analysisService.DeleteHistory was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  string
	}{Ctx: ctx, Id: id}
	mock.lockDeleteHistory.Lock()
	mock.calls.DeleteHistory = append(mock.calls.DeleteHistory, callInfo)
	mock.lockDeleteHistory.Unlock()
	return mock.DeleteHistoryFunc(ctx, id)
}

func (mock *analysisServiceMock) DeleteHistoryCalls() []struct {
	Ctx context.Context
	Id  string
} {
	mock.lockDeleteHistory.RLock()
	calls := mock.calls.DeleteHistory
	mock.lockDeleteHistory.RUnlock()
	return calls
}

func (mock *analysisServiceMock) ListHistory(ctx context.Context, input analysis.ListHistoryInput) ([]domain.AnalysisRecord, error) {
	if mock.ListHistoryFunc == nil {
		panic("analysisServiceMock.ListHistoryFunc: method is nil but analysisService.ListHistory was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input analysis.ListHistoryInput
	}{Ctx: ctx, Input: input}
	mock.lockListHistory.Lock()
	mock.calls.ListHistory = append(mock.calls.ListHistory, callInfo)
	mock.lockListHistory.Unlock()
	return mock.ListHistoryFunc(ctx, input)
}

func (mock *analysisServiceMock) ListHistoryCalls() []struct {
	Ctx   context.Context
	Input analysis.ListHistoryInput
} {
	mock.lockListHistory.RLock()
	calls := mock.calls.ListHistory
	mock.lockListHistory.RUnlock()
	return calls
}

func (mock *analysisServiceMock) Profile(ctx context.Context) (*analysis.ProfileResult, error) {
	if mock.ProfileFunc == nil {
		panic("analysisServiceMock.ProfileFunc: method is nil but analysisService.Profile was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockProfile.Lock()
	mock.calls.Profile = append(mock.calls.Profile, callInfo)
	mock.lockProfile.Unlock()
	return mock.ProfileFunc(ctx)
}

func (mock *analysisServiceMock) ProfileCalls() []struct {
	Ctx context.Context
} {
	mock.lockProfile.RLock()
	calls := mock.calls.Profile
	mock.lockProfile.RUnlock()
	return calls
}
