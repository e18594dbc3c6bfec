package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/couchcryptid/quake-risk-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Success(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-lat", "35.6762", "-lon", "139.6503", "-depth", "15", "-days", "1", "-mag", "6.2"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	var got domain.Assessment
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	assert.Equal(t, domain.CategoryHigh, got.Combined.Category)
	assert.InDelta(t, 83.5, got.Combined.Score, 1e-9)
	assert.Equal(t, "Tokyo", got.Refined.NearestLocationName)
	assert.Equal(t, domain.PlaceSourceOffline, got.Place.Source)
}

func TestRun_Japanese(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-lat", "34.6937", "-lon", "135.5023", "-depth", "45", "-days", "8", "-mag", "4.8", "-lang", "ja"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	var got domain.Assessment
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	assert.Equal(t, "総合リスク評価", got.Combined.Label)
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		code    int
		wantErr string
	}{
		{name: "not a number", args: []string{"-lat", "abc", "-lon", "139", "-depth", "10", "-days", "1", "-mag", "5"}, code: 1, wantErr: "Invalid Input"},
		{name: "outside japan", args: []string{"-lat", "26.2044", "-lon", "127.6792", "-depth", "150", "-days", "30", "-mag", "2.5"}, code: 1, wantErr: "Location Error"},
		{name: "localized", args: []string{"-lat", "35", "-lon", "139", "-depth", "2000", "-days", "1", "-mag", "5", "-lang", "ja"}, code: 1, wantErr: "範囲エラー"},
		{name: "missing catalog", args: []string{"-lat", "35", "-lon", "139", "-depth", "10", "-days", "1", "-mag", "5", "-catalog", "/nonexistent/catalog.yaml"}, code: 1, wantErr: "read catalog"},
		{name: "bad flag", args: []string{"-nope"}, code: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, tt.code, run(tt.args, &stdout, &stderr))
			assert.Contains(t, stderr.String(), tt.wantErr)
			assert.Empty(t, stdout.String())
		})
	}
}
