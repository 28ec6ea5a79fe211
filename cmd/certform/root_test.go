package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"03/01/2024", "2024-01-03", false},
		{"2024-01-03", "2024-01-03", false},
		{"01-03-2024", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.want, got.Format(time.DateOnly))
		})
	}
}

func TestRootCmd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"Certificate created","data":{"id":"c-1","fileName":"Alice_Biology.pdf","viewLink":"https://drive.google.com/file/d/c-1/view"}}`))
	}))
	defer server.Close()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--endpoint", server.URL, "--name", "Alice", "--course", "Biology", "--date", "03/01/2024"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Certificate created successfully!")
	assert.Contains(t, out.String(), "https://drive.google.com/file/d/c-1/view")
}

func TestRootCmd_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"success":false,"message":"Failed to upload certificate"}`))
	}))
	defer server.Close()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--endpoint", server.URL, "-n", "Alice", "-c", "Biology"})

	err := cmd.Execute()
	assert.ErrorIs(t, err, errSubmissionFailed)
	assert.Contains(t, out.String(), "Some error occurred.")
	assert.Contains(t, out.String(), "Failed to upload certificate")
}

func TestRootCmd_RequiresFlags(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--name", "Alice"})

	assert.Error(t, cmd.Execute())
}
