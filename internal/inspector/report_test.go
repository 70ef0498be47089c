package inspector

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReport(t *testing.T) {
	tests := []struct {
		name    string
		columns []ColumnInfo
		want    string
	}{
		{
			name: "no columns",
			want: "Field Name\tData Type\n------------------------\n",
		},
		{
			name: "typed and untyped columns",
			columns: []ColumnInfo{
				{Position: 0, Name: "session_key", DeclaredType: "TEXT"},
				{Position: 1, Name: "payload"},
			},
			want: "Field Name\tData Type\n------------------------\n" +
				"session_key\t\tTEXT\n" +
				"payload\t\t\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.NoError(t, Report(&buf, tt.columns))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestReport_WriteError(t *testing.T) {
	err := Report(failingWriter{}, []ColumnInfo{{Name: "id", DeclaredType: "INTEGER"}})
	assert.EqualError(t, err, "broken pipe")
}
