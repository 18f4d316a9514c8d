//go:build integration

package router_test

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/edulopezdev/forestBarber/internal/config"
	"github.com/edulopezdev/forestBarber/internal/infra"
	"github.com/edulopezdev/forestBarber/internal/model"
	"github.com/edulopezdev/forestBarber/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server    *httptest.Server
	token     string // admin JWT
	clienteID string
}

const adminPassword = "forestbarber2026"

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("forestbarber_test"),
		tcPostgres.WithUsername("forestbarber"),
		tcPostgres.WithPassword("forestbarber"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		StockMinimo:        5,
		ImageStoragePath:   t.TempDir(),
		PDFStoragePath:     t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed an admin and a walk-in client directly against the catalog.
	var rolAdmin, rolCliente model.Rol
	require.NoError(t, db.Where("nombre = ?", "Administrador").First(&rolAdmin).Error)
	require.NoError(t, db.Where("nombre = ?", "Cliente").First(&rolCliente).Error)

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), 12)
	require.NoError(t, err)
	hashStr := string(hash)
	require.NoError(t, db.Create(&model.Usuario{
		Nombre:          "Admin E2E",
		Email:           "admin@e2e.test",
		RolID:           rolAdmin.ID,
		AccedeAlSistema: true,
		Activo:          true,
		PasswordHash:    &hashStr,
	}).Error)

	cliente := &model.Usuario{
		Nombre: "Cliente E2E",
		Email:  "cliente@e2e.test",
		RolID:  rolCliente.ID,
		Activo: true,
	}
	require.NoError(t, db.Create(cliente).Error)

	r := router.New(cfg, db, rdb)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/api/auth/login",
		jsonBody(t, map[string]string{"email": "admin@e2e.test", "password": adminPassword}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{
		server:    srv,
		token:     loginBody.AccessToken,
		clienteID: cliente.ID.String(),
	}
}

func (env *testEnv) crearProducto(t *testing.T, nombre string, precio float64, almacenable bool, cantidad int) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/api/productos",
		jsonBody(t, map[string]any{
			"nombre":         nombre,
			"precio":         precio,
			"es_almacenable": almacenable,
			"cantidad":       cantidad,
		}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var prod struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &prod)
	return prod.ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

// Full day cycle: visit → payment → summary → close → frozen.
func TestE2E_CicloDeCaja(t *testing.T) {
	env := setupTestEnv(t)

	corteID := env.crearProducto(t, "Corte clásico", 25, false, 0)
	shampooID := env.crearProducto(t, "Shampoo", 15, true, 10)

	// Register the visit.
	atencionResp := do(t, env.server, "POST", "/api/atenciones",
		jsonBody(t, map[string]any{
			"cliente_id": env.clienteID,
			"detalles": []map[string]any{
				{"producto_servicio_id": corteID, "cantidad": 1},
				{"producto_servicio_id": shampooID, "cantidad": 1},
			},
		}), env.token)
	require.Equal(t, http.StatusCreated, atencionResp.StatusCode)
	var atencion struct {
		ID    string `json:"id"`
		Total string `json:"total"`
	}
	decodeJSON(t, atencionResp, &atencion)
	assert.Equal(t, "40", atencion.Total)

	// Stock went down by one.
	prodResp := do(t, env.server, "GET", "/api/productos/"+shampooID, nil, env.token)
	require.Equal(t, http.StatusOK, prodResp.StatusCode)
	var prod struct {
		Cantidad int `json:"cantidad"`
	}
	decodeJSON(t, prodResp, &prod)
	assert.Equal(t, 9, prod.Cantidad)

	// Pay in full.
	pagoResp := do(t, env.server, "POST", "/api/pagos",
		jsonBody(t, map[string]any{
			"atencion_id": atencion.ID,
			"metodo":      "efectivo",
			"monto":       40,
		}), env.token)
	require.Equal(t, http.StatusCreated, pagoResp.StatusCode)

	hoy := time.Now().Format("2006-01-02")

	// Live summary before closing.
	resumenResp := do(t, env.server, "GET", "/api/cierrediario/resumen?fecha="+hoy, nil, env.token)
	require.Equal(t, http.StatusOK, resumenResp.StatusCode)
	var resumen struct {
		TotalIngresos string `json:"total_ingresos"`
		Cerrado       bool   `json:"cerrado"`
	}
	decodeJSON(t, resumenResp, &resumen)
	assert.Equal(t, "40", resumen.TotalIngresos)
	assert.False(t, resumen.Cerrado)

	// Close the register.
	cierreResp := do(t, env.server, "POST", "/api/cierrediario/cerrar",
		jsonBody(t, map[string]any{
			"fecha":    hoy,
			"password": adminPassword,
		}), env.token)
	require.Equal(t, http.StatusCreated, cierreResp.StatusCode)

	// Second close same date: rejected.
	dupResp := do(t, env.server, "POST", "/api/cierrediario/cerrar",
		jsonBody(t, map[string]any{
			"fecha":    hoy,
			"password": adminPassword,
		}), env.token)
	assert.Equal(t, http.StatusBadRequest, dupResp.StatusCode)
	var dupBody struct {
		Detail string `json:"detail"`
	}
	decodeJSON(t, dupResp, &dupBody)
	assert.Equal(t, "ya existe un cierre de caja para esa fecha", dupBody.Detail)

	// The closed visit is frozen: no more payments.
	pagoCerradoResp := do(t, env.server, "POST", "/api/pagos",
		jsonBody(t, map[string]any{
			"atencion_id": atencion.ID,
			"metodo":      "efectivo",
			"monto":       5,
		}), env.token)
	assert.Equal(t, http.StatusBadRequest, pagoCerradoResp.StatusCode)
	pagoCerradoResp.Body.Close()

	// Nor deletion.
	delResp := do(t, env.server, "DELETE", "/api/atenciones/"+atencion.ID, nil, env.token)
	assert.Equal(t, http.StatusBadRequest, delResp.StatusCode)
	delResp.Body.Close()
}

// Deleting an open visit restores its stock.
func TestE2E_EliminarAtencionDevuelveStock(t *testing.T) {
	env := setupTestEnv(t)
	shampooID := env.crearProducto(t, "Shampoo", 15, true, 10)

	atencionResp := do(t, env.server, "POST", "/api/atenciones",
		jsonBody(t, map[string]any{
			"cliente_id": env.clienteID,
			"detalles": []map[string]any{
				{"producto_servicio_id": shampooID, "cantidad": 3},
			},
		}), env.token)
	require.Equal(t, http.StatusCreated, atencionResp.StatusCode)
	var atencion struct {
		ID string `json:"id"`
	}
	decodeJSON(t, atencionResp, &atencion)

	delResp := do(t, env.server, "DELETE", "/api/atenciones/"+atencion.ID, nil, env.token)
	require.Equal(t, http.StatusNoContent, delResp.StatusCode)
	delResp.Body.Close()

	prodResp := do(t, env.server, "GET", "/api/productos/"+shampooID, nil, env.token)
	require.Equal(t, http.StatusOK, prodResp.StatusCode)
	var prod struct {
		Cantidad int `json:"cantidad"`
	}
	decodeJSON(t, prodResp, &prod)
	assert.Equal(t, 10, prod.Cantidad)
}

// Selling more than the shelf holds is rejected outright.
func TestE2E_StockInsuficiente(t *testing.T) {
	env := setupTestEnv(t)
	ceraID := env.crearProducto(t, "Cera", 8, true, 2)

	atencionResp := do(t, env.server, "POST", "/api/atenciones",
		jsonBody(t, map[string]any{
			"cliente_id": env.clienteID,
			"detalles": []map[string]any{
				{"producto_servicio_id": ceraID, "cantidad": 3},
			},
		}), env.token)
	assert.Equal(t, http.StatusBadRequest, atencionResp.StatusCode)
	atencionResp.Body.Close()

	prodResp := do(t, env.server, "GET", "/api/productos/"+ceraID, nil, env.token)
	require.Equal(t, http.StatusOK, prodResp.StatusCode)
	var prod struct {
		Cantidad int `json:"cantidad"`
	}
	decodeJSON(t, prodResp, &prod)
	assert.Equal(t, 2, prod.Cantidad)
}

// The sales listing filters by derived payment status.
func TestE2E_VentasPorEstadoPago(t *testing.T) {
	env := setupTestEnv(t)
	corteID := env.crearProducto(t, "Corte clásico", 25, false, 0)

	crearVenta := func(pago float64) string {
		resp := do(t, env.server, "POST", "/api/atenciones",
			jsonBody(t, map[string]any{
				"cliente_id": env.clienteID,
				"detalles": []map[string]any{
					{"producto_servicio_id": corteID, "cantidad": 1},
				},
			}), env.token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var a struct {
			ID string `json:"id"`
		}
		decodeJSON(t, resp, &a)
		if pago > 0 {
			pagoResp := do(t, env.server, "POST", "/api/pagos",
				jsonBody(t, map[string]any{
					"atencion_id": a.ID, "metodo": "efectivo", "monto": pago,
				}), env.token)
			require.Equal(t, http.StatusCreated, pagoResp.StatusCode)
			pagoResp.Body.Close()
		}
		return a.ID
	}

	crearVenta(0)
	crearVenta(10)
	completaID := crearVenta(25)

	listResp := do(t, env.server, "GET", "/api/ventas?estado_pago=completo", nil, env.token)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var list struct {
		Ventas []struct {
			AtencionID string `json:"atencion_id"`
			EstadoPago string `json:"estado_pago"`
		} `json:"ventas"`
	}
	decodeJSON(t, listResp, &list)
	require.Len(t, list.Ventas, 1)
	assert.Equal(t, completaID, list.Ventas[0].AtencionID)
	assert.Equal(t, "completo", list.Ventas[0].EstadoPago)
}

// Role gates: a Barbero can sell but cannot close the register.
func TestE2E_RolesEnCierre(t *testing.T) {
	env := setupTestEnv(t)

	// Create a barber through the API and log in as them.
	barberoResp := do(t, env.server, "POST", "/api/usuarios",
		jsonBody(t, map[string]any{
			"nombre":            "Barbero E2E",
			"email":             "barbero@e2e.test",
			"rol":               "Barbero",
			"accede_al_sistema": true,
			"password":          "secreto123",
		}), env.token)
	require.Equal(t, http.StatusCreated, barberoResp.StatusCode)
	barberoResp.Body.Close()

	loginResp := do(t, env.server, "POST", "/api/auth/login",
		jsonBody(t, map[string]string{"email": "barbero@e2e.test", "password": "secreto123"}),
		"")
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var login struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &login)

	resp := do(t, env.server, "POST", "/api/cierrediario/cerrar",
		jsonBody(t, map[string]any{
			"fecha":    time.Now().Format("2006-01-02"),
			"password": "secreto123",
		}), login.AccessToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}
