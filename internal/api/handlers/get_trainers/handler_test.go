package get_trainers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
	"github.com/m04kA/SMC-TrainingPortal/pkg/logger"
)

type stubCatalog struct {
	trainers []domain.Trainer
	degraded bool
}

func (s stubCatalog) Trainers(context.Context) ([]domain.Trainer, bool) {
	return s.trainers, s.degraded
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name    string
		catalog stubCatalog
		want    string
	}{
		{
			name:    "trainers listed",
			catalog: stubCatalog{trainers: []domain.Trainer{{ID: 1, Name: "Anna", SessionDurationMinutes: 60}}},
			want:    `{"trainers":[{"id":1,"name":"Anna","sessionDurationMinutes":60}],"degraded":false}`,
		},
		{
			name:    "fetch failed",
			catalog: stubCatalog{degraded: true},
			want:    `{"trainers":[],"degraded":true}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			NewHandler(tt.catalog, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodGet, "/trainers", nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}
