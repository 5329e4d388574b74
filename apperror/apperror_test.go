package apperror

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "plain error", err: errors.New("boom"), want: KindInternal},
		{name: "validation", err: Validation("bad"), want: KindValidation},
		{name: "wrapped conflict", err: errors.Wrap(Conflict("dup"), "create result"), want: KindConflict},
		{name: "transport", err: Transport("ftp down", errors.New("dial")), want: KindTransport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, KindValidation.StatusCode())
	assert.Equal(t, http.StatusUnauthorized, KindUnauthorized.StatusCode())
	assert.Equal(t, http.StatusForbidden, KindForbidden.StatusCode())
	assert.Equal(t, http.StatusNotFound, KindNotFound.StatusCode())
	assert.Equal(t, http.StatusConflict, KindConflict.StatusCode())
	assert.Equal(t, http.StatusConflict, KindInvalidState.StatusCode())
	assert.Equal(t, http.StatusBadGateway, KindTransport.StatusCode())
	assert.Equal(t, http.StatusInternalServerError, KindInternal.StatusCode())
}

func TestMessageOf(t *testing.T) {
	err := errors.Wrap(NotFound("Exercise not found!"), "load exercise")
	assert.Equal(t, "Exercise not found!", MessageOf(err))
	assert.Equal(t, "Internal server error!", MessageOf(errors.New("sql: connection refused")))

	wrapped := Internal("Failed to save!", errors.New("disk full"))
	assert.Equal(t, "Failed to save!: disk full", wrapped.Error())
	assert.True(t, Is(wrapped, KindInternal))
	assert.False(t, Is(nil, KindInternal))
}
