package analysis

import (
	"sync"

	"github.com/heartmarshall/summarizer-backend/internal/domain"
)

var _ useCaseCatalog = &useCaseCatalogMock{}

type useCaseCatalogMock struct {
	GetFunc      func(id string) (domain.UseCase, bool)
	IDsFunc      func() []string
	SettingsFunc func() domain.GlobalSettings

	calls struct {
		Get []struct {
			Id string
		}
		IDs      []struct{}
		Settings []struct{}
	}
	lockGet      sync.RWMutex
	lockIDs      sync.RWMutex
	lockSettings sync.RWMutex
}

func (mock *useCaseCatalogMock) Get(id string) (domain.UseCase, bool) {
	if mock.GetFunc == nil {
		panic("useCaseCatalogMock.GetFunc: method is nil but useCaseCatalog.Get was just called")
	}
	callInfo := struct {
		Id string
	}{Id: id}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(id)
}

func (mock *useCaseCatalogMock) GetCalls() []struct {
	Id string
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *useCaseCatalogMock) IDs() []string {
	if mock.IDsFunc == nil {
		panic("useCaseCatalogMock.IDsFunc: method is nil but useCaseCatalog.IDs was just called")
	}
	callInfo := struct{}{}
	mock.lockIDs.Lock()
	mock.calls.IDs = append(mock.calls.IDs, callInfo)
	mock.lockIDs.Unlock()
	return mock.IDsFunc()
}

func (mock *useCaseCatalogMock) IDsCalls() []struct{} {
	mock.lockIDs.RLock()
	calls := mock.calls.IDs
	mock.lockIDs.RUnlock()
	return calls
}

func (mock *useCaseCatalogMock) Settings() domain.GlobalSettings {
	if mock.SettingsFunc == nil {
		panic("useCaseCatalogMock.SettingsFunc: method is nil but useCaseCatalog.Settings was just called")
	}
	callInfo := struct{}{}
	mock.lockSettings.Lock()
	mock.calls.Settings = append(mock.calls.Settings, callInfo)
	mock.lockSettings.Unlock()
	return mock.SettingsFunc()
}

func (mock *useCaseCatalogMock) SettingsCalls() []struct{} {
	mock.lockSettings.RLock()
	calls := mock.calls.Settings
	mock.lockSettings.RUnlock()
	return calls
}
