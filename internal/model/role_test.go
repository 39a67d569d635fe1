package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleEmpleado, ParseRole("empleado"))
	assert.Equal(t, RoleCliente, ParseRole("cliente"))

	// Anything unrecognized collapses to cliente.
	assert.Equal(t, RoleCliente, ParseRole(""))
	assert.Equal(t, RoleCliente, ParseRole("root"))
	assert.Equal(t, RoleCliente, ParseRole("ADMIN"))
}

func TestLandingPath(t *testing.T) {
	assert.Equal(t, PathAdmin, RoleAdmin.LandingPath())
	assert.Equal(t, PathEmpleado, RoleEmpleado.LandingPath())
	assert.Equal(t, PathCliente, RoleCliente.LandingPath())

	// Total over the type: unknown values still land somewhere.
	assert.Equal(t, PathCliente, Role("whatever").LandingPath())
	assert.Equal(t, PathCliente, Role("").LandingPath())
}

func TestValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleEmpleado.Valid())
	assert.True(t, RoleCliente.Valid())
	assert.False(t, Role("superadmin").Valid())
	assert.False(t, Role("").Valid())
}

func TestCanAccess(t *testing.T) {
	assert.True(t, RoleAdmin.CanAccess(PathAdmin))
	assert.True(t, RoleAdmin.CanAccess(PathEmpleado))
	assert.True(t, RoleAdmin.CanAccess(PathCliente))

	assert.False(t, RoleEmpleado.CanAccess(PathAdmin))
	assert.True(t, RoleEmpleado.CanAccess(PathEmpleado))
	assert.True(t, RoleEmpleado.CanAccess(PathCliente))

	assert.False(t, RoleCliente.CanAccess(PathAdmin))
	assert.False(t, RoleCliente.CanAccess(PathEmpleado))
	assert.True(t, RoleCliente.CanAccess(PathCliente))
}
