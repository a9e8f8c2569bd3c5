package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/smartedu-api/internal/service"
)

func TestAdmissionCalculateBindsQuery(t *testing.T) {
	handler := NewAdmissionHandler(service.NewAdmissionService(service.College))

	c, rec := newTestContext(http.MethodGet, "/admission/fees/calculate?branch=entc&include_hostel=true", nil)
	handler.Calculate(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	decode(t, rec, &envelope)
	assert.Equal(t, "ENTC", envelope.Data["branch"])
	assert.Equal(t, float64(36000), envelope.Data["hostel_fees"])
	assert.Equal(t, float64(0), envelope.Data["transport_fees"])
	assert.Equal(t, float64(154000), envelope.Data["total_fees"])
	breakdown, ok := envelope.Data["breakdown"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(90000), breakdown["tuition_fee"])
}

func TestAdmissionCalculateRejectsBadInput(t *testing.T) {
	handler := NewAdmissionHandler(service.NewAdmissionService(service.College))

	c, rec := newTestContext(http.MethodGet, "/admission/fees/calculate?branch=ARCH", nil)
	handler.Calculate(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newTestContext(http.MethodGet, "/admission/fees/calculate?include_hostel=maybe", nil)
	handler.Calculate(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdmissionInfoHidesFeeDetailOnBranches(t *testing.T) {
	handler := NewAdmissionHandler(service.NewAdmissionService(service.College))

	c, rec := newTestContext(http.MethodGet, "/admission/info", nil)
	handler.Info(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	decode(t, rec, &envelope)
	branches, ok := envelope.Data["branches"].([]interface{})
	require.True(t, ok)
	require.Len(t, branches, 6)
	first := branches[0].(map[string]interface{})
	assert.Equal(t, "CSE", first["code"])
	assert.NotContains(t, first, "fees")

	c, rec = newTestContext(http.MethodGet, "/admission/contacts", nil)
	handler.Contacts(c)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &envelope)
	assert.Len(t, envelope.Data["branch_coordinators"], 3)
}
