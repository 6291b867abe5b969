package compensation_test

import (
	"encoding/json"
	"testing"
	"time"

	"go-hcm/internal/compensation"

	"github.com/stretchr/testify/assert"
)

func record(gross, rent, utility, other float64) compensation.ChangeRecord {
	return compensation.ChangeRecord{
		EffectiveDate:    "2026-01-01",
		GrossSalary:      gross,
		HouseRent:        rent,
		UtilityAllowance: utility,
		OtherAllowance:   other,
		ChangeType:       compensation.ChangeTypeIncrement,
		Remarks:          "test",
		CreatedAt:        time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		CreatedBy:        "tester",
	}
}

func TestHistory_AppendSyncsAllFourFields(t *testing.T) {
	var h compensation.History
	var snap compensation.Snapshot

	h.Append(record(50000, 10000, 2000, 500), &snap)

	assert.Len(t, h, 1)
	assert.Equal(t, 50000.0, snap.GrossSalary)
	assert.Equal(t, 10000.0, snap.HouseRent)
	assert.Equal(t, 2000.0, snap.UtilityAllowance)
	assert.Equal(t, 500.0, snap.OtherAllowance)

	h.Append(record(60000, 12000, 2500, 0), &snap)

	assert.Len(t, h, 2)
	assert.Equal(t, 60000.0, snap.GrossSalary)
	assert.Equal(t, 12000.0, snap.HouseRent)
	assert.Equal(t, 2500.0, snap.UtilityAllowance)
	assert.Equal(t, 0.0, snap.OtherAllowance)
}

func TestHistory_EditFieldOnLastIndexPropagatesOnlyThatField(t *testing.T) {
	var h compensation.History
	var snap compensation.Snapshot

	h.Append(record(50000, 10000, 2000, 500), &snap)
	h.Append(record(60000, 12000, 2500, 0), &snap)

	err := h.EditField(1, compensation.FieldGrossSalary, 65000, &snap)

	assert.NoError(t, err)
	assert.Equal(t, 65000.0, h[1].GrossSalary)
	assert.Equal(t, 65000.0, snap.GrossSalary)
	// Field lain tidak ikut di-refresh.
	assert.Equal(t, 12000.0, snap.HouseRent)
	assert.Equal(t, 2500.0, snap.UtilityAllowance)
}

func TestHistory_EditFieldOnNonLastIndexNeverTouchesSnapshot(t *testing.T) {
	var h compensation.History
	var snap compensation.Snapshot

	h.Append(record(50000, 0, 0, 0), &snap)
	h.Append(record(60000, 0, 0, 0), &snap)
	h.Append(record(70000, 0, 0, 0), &snap)

	err := h.EditField(0, compensation.FieldGrossSalary, 55000, &snap)

	assert.NoError(t, err)
	assert.Equal(t, 55000.0, h[0].GrossSalary)
	assert.Equal(t, 70000.0, snap.GrossSalary)
}

func TestHistory_EditFieldRejectsBadInput(t *testing.T) {
	var h compensation.History
	var snap compensation.Snapshot
	h.Append(record(50000, 0, 0, 0), &snap)

	assert.ErrorIs(t, h.EditField(5, compensation.FieldGrossSalary, 1, &snap), compensation.ErrIndexOutOfRange)
	assert.ErrorIs(t, h.EditField(-1, compensation.FieldGrossSalary, 1, &snap), compensation.ErrIndexOutOfRange)
	assert.ErrorIs(t, h.EditField(0, compensation.Field("remarks"), 1, &snap), compensation.ErrUnknownField)
	assert.Equal(t, 50000.0, snap.GrossSalary)
}

func TestHistory_RemoveLastResyncsToNewLastRecord(t *testing.T) {
	var h compensation.History
	var snap compensation.Snapshot

	h.Append(record(50000, 10000, 0, 0), &snap)
	h.Append(record(70000, 15000, 1000, 0), &snap)

	err := h.RemoveAt(1, &snap)

	assert.NoError(t, err)
	assert.Len(t, h, 1)
	assert.Equal(t, 50000.0, snap.GrossSalary)
	assert.Equal(t, 10000.0, snap.HouseRent)
	assert.Equal(t, 0.0, snap.UtilityAllowance)
}

func TestHistory_RemoveNonLastLeavesSnapshotAlone(t *testing.T) {
	var h compensation.History
	var snap compensation.Snapshot

	h.Append(record(50000, 0, 0, 0), &snap)
	h.Append(record(60000, 0, 0, 0), &snap)
	h.Append(record(70000, 0, 0, 0), &snap)

	err := h.RemoveAt(1, &snap)

	assert.NoError(t, err)
	assert.Len(t, h, 2)
	assert.Equal(t, 50000.0, h[0].GrossSalary)
	assert.Equal(t, 70000.0, h[1].GrossSalary)
	// Index 1 bukan index terakhir, snapshot tidak tersentuh.
	assert.Equal(t, 70000.0, snap.GrossSalary)
}

func TestHistory_RemoveToEmptyRetainsLastKnownSnapshot(t *testing.T) {
	var h compensation.History
	var snap compensation.Snapshot

	h.Append(record(50000, 8000, 0, 0), &snap)

	err := h.RemoveAt(0, &snap)

	assert.NoError(t, err)
	assert.Len(t, h, 0)
	assert.Equal(t, 50000.0, snap.GrossSalary)
	assert.Equal(t, 8000.0, snap.HouseRent)
}

func TestHistory_Last(t *testing.T) {
	var h compensation.History
	var snap compensation.Snapshot

	_, ok := h.Last()
	assert.False(t, ok)

	h.Append(record(50000, 0, 0, 0), &snap)
	last, ok := h.Last()
	assert.True(t, ok)
	assert.Equal(t, 50000.0, last.GrossSalary)
}

func TestHistory_JSONRoundTripUsesWireFieldNames(t *testing.T) {
	var h compensation.History
	var snap compensation.Snapshot
	h.Append(record(100000, 20000, 5000, 0), &snap)

	raw, err := h.Value()
	assert.NoError(t, err)

	var decoded []map[string]any
	assert.NoError(t, json.Unmarshal(raw.([]byte), &decoded))
	assert.Equal(t, 100000.0, decoded[0]["newGross"])
	assert.Equal(t, 20000.0, decoded[0]["newHouseRent"])
	assert.Equal(t, "Increment", decoded[0]["type"])

	var scanned compensation.History
	assert.NoError(t, scanned.Scan(raw))
	assert.Equal(t, h, scanned)
}

func TestHistory_ScanNilYieldsEmptyLedger(t *testing.T) {
	var h compensation.History
	assert.NoError(t, h.Scan(nil))
	assert.Len(t, h, 0)
}

func TestLockState_Transition(t *testing.T) {
	state := compensation.LockBootstrap
	assert.True(t, state.Editable())

	locked, err := state.CommitFirstSave()
	assert.NoError(t, err)
	assert.Equal(t, compensation.LockLocked, locked)
	assert.False(t, locked.Editable())

	_, err = locked.CommitFirstSave()
	assert.ErrorIs(t, err, compensation.ErrAlreadyLocked)
}

func TestAmount_CoercesNonNumericInputToZero(t *testing.T) {
	var payload struct {
		Gross compensation.Amount `json:"gross"`
	}

	assert.NoError(t, json.Unmarshal([]byte(`{"gross": 50000}`), &payload))
	assert.Equal(t, 50000.0, payload.Gross.Float64())

	assert.NoError(t, json.Unmarshal([]byte(`{"gross": "60000"}`), &payload))
	assert.Equal(t, 60000.0, payload.Gross.Float64())

	assert.NoError(t, json.Unmarshal([]byte(`{"gross": "abc"}`), &payload))
	assert.Equal(t, 0.0, payload.Gross.Float64())

	assert.NoError(t, json.Unmarshal([]byte(`{"gross": null}`), &payload))
	assert.Equal(t, 0.0, payload.Gross.Float64())
}
