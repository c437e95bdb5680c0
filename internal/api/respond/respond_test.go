package respond

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"chitrakalakar-app/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("artwork x: %w", domain.ErrNotFound), http.StatusNotFound},
		{domain.ErrInvalidTransition, http.StatusBadRequest},
		{domain.ErrInvalidInput, http.StatusBadRequest},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.AsTimeout(context.Background(), context.DeadlineExceeded), http.StatusGatewayTimeout},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Status(tc.err), tc.err.Error())
	}
}
