package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Ricaps/tennis-club-reservations-management/internal/model"
	"github.com/Ricaps/tennis-club-reservations-management/internal/repository"
)

func newContext(t *testing.T, target string) echo.Context {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestParsePageable(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   repository.Pageable
	}{
		{name: "defaults", target: "/", want: repository.Pageable{Page: 0, Size: 20}},
		{
			name:   "explicit values",
			target: "/?page=3&size=50&sort=fromTime&order=desc",
			want:   repository.Pageable{Page: 3, Size: 50, Sort: "fromTime", Desc: true},
		},
		{name: "size above cap ignored", target: "/?size=5000", want: repository.Pageable{Page: 0, Size: 20}},
		{name: "negative page ignored", target: "/?page=-2", want: repository.Pageable{Page: 0, Size: 20}},
		{name: "order asc", target: "/?order=asc", want: repository.Pageable{Page: 0, Size: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, parsePageable(newContext(t, tt.target)))
		})
	}
}

func TestActingUserUID(t *testing.T) {
	c := newContext(t, "/")
	_, err := actingUserUID(c)
	require.Error(t, err)

	want := uuid.New()
	c.Set("user_id", want.String())
	got, err := actingUserUID(c)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestIsAdmin(t *testing.T) {
	c := newContext(t, "/")
	require.False(t, isAdmin(c))

	c.Set("roles", []string{model.RoleUser})
	require.False(t, isAdmin(c))

	c.Set("roles", []string{model.RoleUser, model.RoleAdmin})
	require.True(t, isAdmin(c))
}

func TestNormalizeRoles(t *testing.T) {
	require.Equal(t, []string{model.RoleUser}, normalizeRoles(nil))
	require.Equal(t, []string{model.RoleUser}, normalizeRoles([]string{"gardener"}))
	require.Equal(t, []string{model.RoleAdmin, model.RoleUser}, normalizeRoles([]string{" admin ", "user"}))
}
