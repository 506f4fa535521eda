package metrics

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T) *Snapshot {
	t.Helper()
	data, err := os.ReadFile("testdata/snapshot.json")
	require.NoError(t, err)
	var s Snapshot
	require.NoError(t, json.Unmarshal(data, &s))
	return &s
}

func TestValidate_AcceptsFixture(t *testing.T) {
	assert.NoError(t, Validate(loadFixture(t)))
}

func TestValidate_Nil(t *testing.T) {
	err := Validate(nil)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrValidation))
}

func TestValidate_MissingRequiredSection(t *testing.T) {
	tests := []struct {
		name  string
		strip func(s *Snapshot)
		field string
	}{
		{"cpu", func(s *Snapshot) { s.CPU = nil }, "cpu"},
		{"memory", func(s *Snapshot) { s.Memory = nil }, "memory"},
		{"network", func(s *Snapshot) { s.Network = nil }, "network"},
		{"disk", func(s *Snapshot) { s.Disk = nil }, "disk"},
		{"processes", func(s *Snapshot) { s.Processes = nil }, "processes"},
		{"system", func(s *Snapshot) { s.System = nil }, "system"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loadFixture(t)
			tt.strip(s)

			err := Validate(s)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrValidation))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestValidate_ListsAllMissingFieldsSorted(t *testing.T) {
	s := loadFixture(t)
	s.System = nil
	s.CPU = nil

	err := Validate(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Snapshot is missing required fields: cpu, system")
}

func TestValidate_EmptyProcessListIsValid(t *testing.T) {
	var s Snapshot
	require.NoError(t, json.Unmarshal([]byte(`{
		"cpu": {}, "memory": {}, "network": {}, "disk": {"partitions": []},
		"processes": [], "system": {}
	}`), &s))

	assert.NoError(t, Validate(&s))
}

func TestValidate_OptionalSectionsMayBeAbsent(t *testing.T) {
	s := loadFixture(t)
	s.GPU = nil
	s.Temperature = nil
	s.Disk.IO = nil

	assert.NoError(t, Validate(s))
}

func TestValidate_OutOfRangeValuesAreNotRejected(t *testing.T) {
	s := loadFixture(t)
	s.CPU.UsagePercent = 140
	s.Memory.Percent = -2

	assert.NoError(t, Validate(s))
}
