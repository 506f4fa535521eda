package metrics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_DecodesFixture(t *testing.T) {
	s := loadFixture(t)

	assert.Equal(t, 23.4, s.CPU.UsagePercent)
	assert.Len(t, s.CPU.PerCore, 4)
	assert.Equal(t, 4, s.CPU.CoresPhysical)
	assert.Equal(t, 8, s.CPU.CoresLogical)
	assert.Equal(t, 17179869184.0, s.Memory.Total)
	require.Len(t, s.Disk.Partitions, 2)
	assert.Equal(t, "/data", s.Disk.Partitions[1].Mountpoint)
	require.NotNil(t, s.Disk.IO)
	assert.Equal(t, 104857600.0, s.Disk.IO.ReadBytes)
	assert.Equal(t, 1.5, s.Network.SpeedRecv)
	require.Len(t, s.Processes, 2)
	assert.Equal(t, 1234, s.Processes[0].PID)
	assert.Equal(t, "workstation", s.System.Hostname)
	assert.Equal(t, 412, s.System.ProcessCount)
}

func TestSnapshot_PrimaryGPU(t *testing.T) {
	s := loadFixture(t)
	gpu := s.PrimaryGPU()
	require.NotNil(t, gpu)
	assert.Equal(t, 42.0, gpu.Load)
	require.NotNil(t, gpu.Temperature)
	assert.Equal(t, 61.0, *gpu.Temperature)

	s.GPU.Available = false
	assert.Nil(t, s.PrimaryGPU())

	s.GPU = &GPU{Available: true}
	assert.Nil(t, s.PrimaryGPU(), "available but empty list")

	s.GPU = nil
	assert.Nil(t, s.PrimaryGPU())

	var nilSnap *Snapshot
	assert.Nil(t, nilSnap.PrimaryGPU())
}

func TestSnapshot_CPUTemperature(t *testing.T) {
	s := loadFixture(t)
	temp, ok := s.CPUTemperature()
	assert.True(t, ok)
	assert.Equal(t, 55.5, temp)

	s.Temperature.CPU.Available = false
	_, ok = s.CPUTemperature()
	assert.False(t, ok)

	s.Temperature = nil
	_, ok = s.CPUTemperature()
	assert.False(t, ok)
}

func TestSnapshot_NullTemperatureIsUnavailable(t *testing.T) {
	var s Snapshot
	require.NoError(t, json.Unmarshal([]byte(`{"temperature": {"cpu": {"available": true, "temperature": null}}}`), &s))
	_, ok := s.CPUTemperature()
	assert.False(t, ok)
}

func TestSessionStatus_Decode(t *testing.T) {
	var st SessionStatus
	require.NoError(t, json.Unmarshal([]byte(`{"active": true, "elapsed_seconds": 125, "target_seconds": 300, "data_points": 42}`), &st))
	assert.True(t, st.Active)
	assert.Equal(t, 125.0, st.ElapsedSeconds)
	assert.Equal(t, 300.0, st.TargetSeconds)
	assert.Equal(t, 42, st.DataPoints)
}
