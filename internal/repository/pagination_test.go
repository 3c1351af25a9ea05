package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderClause(t *testing.T) {
	columns := map[string]string{
		"fromtime":  "r.from_time",
		"createdat": "r.created_at",
	}

	tests := []struct {
		name string
		p    Pageable
		want string
	}{
		{name: "default column when sort empty", p: Pageable{}, want: " ORDER BY r.created_at ASC"},
		{name: "whitelisted field", p: Pageable{Sort: "fromTime"}, want: " ORDER BY r.from_time ASC"},
		{name: "descending", p: Pageable{Sort: "fromTime", Desc: true}, want: " ORDER BY r.from_time DESC"},
		{name: "whitespace trimmed", p: Pageable{Sort: "  createdAt "}, want: " ORDER BY r.created_at ASC"},
		{
			name: "unknown field falls back, never reaches sql",
			p:    Pageable{Sort: "1; DROP TABLE reservation"},
			want: " ORDER BY r.created_at ASC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, orderClause(tt.p, columns, "r.created_at"))
		})
	}
}

func TestPageableOffset(t *testing.T) {
	require.Equal(t, 0, Pageable{Page: 0, Size: 20}.Offset())
	require.Equal(t, 40, Pageable{Page: 2, Size: 20}.Offset())
}
