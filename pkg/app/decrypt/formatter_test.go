package decrypt

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/deploymenttheory/go-t2decrypt/internal/img4"
)

func sampleResponse() *Response {
	return &Response{
		RunID:       "6f1c1c1e-7d59-4c55-9b8e-2d7b1f0b6c11",
		LibraryPath: testLibrary,
		OutputPath:  testOutput,
		Files: []FileResult{
			{
				Kind:          FileKindContainer,
				SourcePath:    testLibrary + "/boot.img4",
				OutputPath:    testOutput + "/boot.img4",
				EncryptedSize: 4096,
				DecryptedSize: 4090,
				Format:        img4.FormatASN1Sequence,
			},
			{
				Kind:       FileKindCompanion,
				Model:      "J132",
				SourcePath: testLibrary + "/bootchains/J132/diags",
				OutputPath: testOutput + "/bootchains/J132/diags",
				Error:      "invalid padding",
			},
		},
		Succeeded: 1,
		Failed:    1,
		Duration:  1500 * time.Millisecond,
	}
}

func TestFormatOutput(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		wantErr  bool
		validate func(*testing.T, []byte)
	}{
		{
			name:   "table format",
			format: "table",
			validate: func(t *testing.T, output []byte) {
				s := string(output)
				assert.Contains(t, s, "NAME")
				assert.Contains(t, s, "container")
				assert.Contains(t, s, "J132")
				assert.Contains(t, s, "asn1-sequence")
				assert.Contains(t, s, "failed: invalid padding")
				assert.Contains(t, s, "Decrypted 1 of 2 files")
				assert.Contains(t, s, "Output directory: "+testOutput)
			},
		},
		{
			name:   "json format",
			format: "json",
			validate: func(t *testing.T, output []byte) {
				var decoded Response
				require.NoError(t, json.Unmarshal(output, &decoded))
				assert.Equal(t, sampleResponse().RunID, decoded.RunID)
				require.Len(t, decoded.Files, 2)
				assert.Equal(t, "J132", decoded.Files[1].Model)
				assert.Equal(t, img4.FormatASN1Sequence, decoded.Files[0].Format)
			},
		},
		{
			name:   "yaml format",
			format: "yaml",
			validate: func(t *testing.T, output []byte) {
				var decoded map[string]any
				require.NoError(t, yaml.Unmarshal(output, &decoded))
				assert.Equal(t, sampleResponse().RunID, decoded["run_id"])
				assert.Equal(t, 1, decoded["failed"])
			},
		},
		{
			name:    "unsupported format",
			format:  "xml",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := FormatOutput(&buf, sampleResponse(), tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, buf.Bytes())
		})
	}
}

func TestFormatOutput_EmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatOutput(&buf, &Response{LibraryPath: testLibrary}, "table"))
	assert.Contains(t, buf.String(), "No encrypted files found in "+testLibrary)
}

func TestFormatSummary(t *testing.T) {
	assert.Equal(t, "No files decrypted", FormatSummary(&Response{}))

	resp := sampleResponse()
	resp.Skipped = 1
	summary := FormatSummary(resp)
	assert.Contains(t, summary, "Decrypted 1 of 2 files totaling 4.0 KB")
	assert.Contains(t, summary, "1 failed")
	assert.Contains(t, summary, "1 skipped")
	assert.Contains(t, summary, "1.5s")
}

func TestFileResult_Display(t *testing.T) {
	tests := []struct {
		name   string
		result FileResult
		label  string
		status string
		size   string
	}{
		{"container", FileResult{Kind: FileKindContainer, DecryptedSize: 512}, "container", "ok", "512 B"},
		{"companion", FileResult{Kind: FileKindCompanion, Model: "J680", DecryptedSize: 3 * 1024 * 1024}, "J680", "ok", "3.0 MB"},
		{"skipped", FileResult{Kind: FileKindContainer, Skipped: true}, "container", "skipped", "0 B"},
		{"failed", FileResult{Kind: FileKindCompanion, Model: "J132", Error: "x"}, "J132", "failed", "0 B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.label, tt.result.Name())
			assert.Equal(t, tt.status, tt.result.Status())
			assert.Equal(t, tt.size, tt.result.FormatSize())
		})
	}
}
