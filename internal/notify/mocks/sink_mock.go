package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockSink adalah mock untuk notify.Sink
type MockSink struct {
	mock.Mock
}

func (m *MockSink) Notify(token, title, body string) {
	m.Called(token, title, body)
}
