package service_test

import (
	"context"
	"errors"
	"time"

	"github.com/edulopezdev/forestBarber/internal/dto"
	"github.com/edulopezdev/forestBarber/internal/model"
	"github.com/edulopezdev/forestBarber/internal/repository"
	"github.com/edulopezdev/forestBarber/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubUsuarioRepo is an in-memory UsuarioRepository for testing.
type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
	roles    map[string]*model.Rol
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{
		usuarios: make(map[uuid.UUID]*model.Usuario),
		roles:    make(map[string]*model.Rol),
	}
}

func (r *stubUsuarioRepo) add(u *model.Usuario) *model.Usuario {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Rol != nil {
		if _, ok := r.roles[u.Rol.Nombre]; !ok {
			if u.Rol.ID == uuid.Nil {
				u.Rol.ID = uuid.New()
			}
			r.roles[u.Rol.Nombre] = u.Rol
		}
		u.RolID = r.roles[u.Rol.Nombre].ID
	}
	r.usuarios[u.ID] = u
	return u
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	r.add(u)
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) List(_ context.Context, _ dto.UsuarioFilter) ([]model.Usuario, int64, error) {
	out := make([]model.Usuario, 0, len(r.usuarios))
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	u, ok := r.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Activo = false
	return nil
}

func (r *stubUsuarioRepo) CambiarEstado(_ context.Context, id uuid.UUID, activo bool) error {
	u, ok := r.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Activo = activo
	return nil
}

func (r *stubUsuarioRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.usuarios[id]
	return ok, nil
}

func (r *stubUsuarioRepo) ExistsConRol(_ context.Context, id uuid.UUID, rol string) (bool, error) {
	u, ok := r.usuarios[id]
	if !ok || u.Rol == nil {
		return false, nil
	}
	return u.Rol.Nombre == rol, nil
}

func (r *stubUsuarioRepo) FindRolByNombre(_ context.Context, nombre string) (*model.Rol, error) {
	rol, ok := r.roles[nombre]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rol, nil
}

func (r *stubUsuarioRepo) ListRoles(_ context.Context) ([]model.Rol, error) {
	out := make([]model.Rol, 0, len(r.roles))
	for _, rol := range r.roles {
		out = append(out, *rol)
	}
	return out, nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

// stubProductoRepo is an in-memory ProductoRepository with real stock guards.
type stubProductoRepo struct {
	productos map[uuid.UUID]*model.ProductoServicio
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.ProductoServicio)}
}

func (r *stubProductoRepo) add(p *model.ProductoServicio) *model.ProductoServicio {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return p
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.ProductoServicio) error {
	r.add(p)
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ProductoServicio, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.ProductoServicio, int64, error) {
	out := make([]model.ProductoServicio, 0, len(r.productos))
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.ProductoServicio) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = false
	return nil
}

func (r *stubProductoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.ProductoServicio, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) DescontarStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if p.Cantidad < cantidad {
		return repository.ErrStockInsuficiente
	}
	p.Cantidad -= cantidad
	return nil
}

func (r *stubProductoRepo) DevolverStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Cantidad += cantidad
	return nil
}

func (r *stubProductoRepo) ListBajoStock(_ context.Context, umbral int) ([]model.ProductoServicio, error) {
	var out []model.ProductoServicio
	for _, p := range r.productos {
		if p.EsAlmacenable && p.Activo && p.Cantidad <= umbral {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// stubAtencionRepo is an in-memory AtencionRepository.
type stubAtencionRepo struct {
	atenciones map[uuid.UUID]*model.Atencion
}

func newStubAtencionRepo() *stubAtencionRepo {
	return &stubAtencionRepo{atenciones: make(map[uuid.UUID]*model.Atencion)}
}

func (r *stubAtencionRepo) add(a *model.Atencion) *model.Atencion {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.atenciones[a.ID] = a
	return a
}

func (r *stubAtencionRepo) Create(_ context.Context, _ *gorm.DB, a *model.Atencion) error {
	r.add(a)
	return nil
}

func (r *stubAtencionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Atencion, error) {
	a, ok := r.atenciones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *stubAtencionRepo) List(_ context.Context, _, _ int) ([]model.Atencion, int64, error) {
	out := make([]model.Atencion, 0, len(r.atenciones))
	for _, a := range r.atenciones {
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (r *stubAtencionRepo) Update(_ context.Context, a *model.Atencion) error {
	if _, ok := r.atenciones[a.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.atenciones[a.ID] = a
	return nil
}

func (r *stubAtencionRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	if _, ok := r.atenciones[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.atenciones, id)
	return nil
}

func (r *stubAtencionRepo) ReplaceDetallesTx(_ *gorm.DB, atencionID uuid.UUID, detalles []model.DetalleAtencion) error {
	a, ok := r.atenciones[atencionID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Detalles = detalles
	return nil
}

func (r *stubAtencionRepo) ListVentas(_ context.Context, filter dto.VentaFilter) ([]model.Atencion, error) {
	var out []model.Atencion
	for _, a := range r.atenciones {
		if len(a.Detalles) == 0 {
			continue
		}
		dia := a.Fecha.Format("2006-01-02")
		if filter.FechaDesde != "" && dia < filter.FechaDesde {
			continue
		}
		if filter.FechaHasta != "" && dia > filter.FechaHasta {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (r *stubAtencionRepo) ListPorMes(_ context.Context, barberoID uuid.UUID, mes, anio int) ([]model.Atencion, error) {
	var out []model.Atencion
	for _, a := range r.atenciones {
		if a.BarberoID == barberoID && int(a.Fecha.Month()) == mes && a.Fecha.Year() == anio {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubAtencionRepo) DB() *gorm.DB { return nil }

var _ repository.AtencionRepository = (*stubAtencionRepo)(nil)

// stubCierreRepo keeps closings in memory and derives the daily sums from the
// atencion stub it shares data with, the way the SQL aggregates do.
type stubCierreRepo struct {
	cierres    map[string]*model.CierreDiario // keyed by YYYY-MM-DD
	atenciones *stubAtencionRepo
}

func newStubCierreRepo(atenciones *stubAtencionRepo) *stubCierreRepo {
	return &stubCierreRepo{
		cierres:    make(map[string]*model.CierreDiario),
		atenciones: atenciones,
	}
}

func (r *stubCierreRepo) CreateTx(_ *gorm.DB, c *model.CierreDiario) error {
	key := c.Fecha.Format("2006-01-02")
	if _, ok := r.cierres[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.cierres[key] = c
	return nil
}

func (r *stubCierreRepo) FindByID(_ context.Context, id uuid.UUID) (*model.CierreDiario, error) {
	for _, c := range r.cierres {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCierreRepo) FindByFecha(_ context.Context, fecha time.Time) (*model.CierreDiario, error) {
	c, ok := r.cierres[fecha.Format("2006-01-02")]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCierreRepo) List(_ context.Context, _, _ int) ([]model.CierreDiario, int64, error) {
	out := make([]model.CierreDiario, 0, len(r.cierres))
	for _, c := range r.cierres {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubCierreRepo) Update(_ context.Context, c *model.CierreDiario) error {
	r.cierres[c.Fecha.Format("2006-01-02")] = c
	return nil
}

func (r *stubCierreRepo) SumDetallesDia(_ context.Context, fecha time.Time, almacenable bool) (decimal.Decimal, int, error) {
	dia := fecha.Format("2006-01-02")
	monto := decimal.Zero
	unidades := 0
	for _, a := range r.atenciones.atenciones {
		if a.Fecha.Format("2006-01-02") != dia {
			continue
		}
		for _, d := range a.Detalles {
			if d.ProductoServicio == nil || d.ProductoServicio.EsAlmacenable != almacenable {
				continue
			}
			monto = monto.Add(d.Subtotal())
			unidades += d.Cantidad
		}
	}
	return monto, unidades, nil
}

func (r *stubCierreRepo) SumPagosPorMetodo(_ context.Context, fecha time.Time) ([]repository.MetodoTotal, error) {
	dia := fecha.Format("2006-01-02")
	totales := make(map[string]*repository.MetodoTotal)
	var orden []string
	for _, a := range r.atenciones.atenciones {
		if a.Fecha.Format("2006-01-02") != dia {
			continue
		}
		for _, p := range a.Pagos {
			m := string(p.Metodo)
			t, ok := totales[m]
			if !ok {
				t = &repository.MetodoTotal{MetodoPago: m}
				totales[m] = t
				orden = append(orden, m)
			}
			t.Monto = t.Monto.Add(p.Monto)
			t.Cantidad++
		}
	}
	out := make([]repository.MetodoTotal, 0, len(orden))
	for _, m := range orden {
		out = append(out, *totales[m])
	}
	return out, nil
}

func (r *stubCierreRepo) LinkAtencionesTx(_ *gorm.DB, fecha time.Time, cierreID uuid.UUID) error {
	dia := fecha.Format("2006-01-02")
	for _, a := range r.atenciones.atenciones {
		if a.Fecha.Format("2006-01-02") == dia && a.CierreDiarioID == nil {
			id := cierreID
			a.CierreDiarioID = &id
		}
	}
	return nil
}

func (r *stubCierreRepo) AtencionCerrada(_ context.Context, atencionID uuid.UUID) (bool, error) {
	a, ok := r.atenciones.atenciones[atencionID]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	return a.CierreDiarioID != nil, nil
}

func (r *stubCierreRepo) DB() *gorm.DB { return nil }

var _ repository.CierreDiarioRepository = (*stubCierreRepo)(nil)

// stubPagoRepo is an in-memory PagoRepository.
type stubPagoRepo struct {
	pagos map[uuid.UUID]*model.Pago
}

func newStubPagoRepo() *stubPagoRepo {
	return &stubPagoRepo{pagos: make(map[uuid.UUID]*model.Pago)}
}

func (r *stubPagoRepo) Create(_ context.Context, p *model.Pago) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.pagos[p.ID] = p
	return nil
}

func (r *stubPagoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Pago, error) {
	p, ok := r.pagos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPagoRepo) List(_ context.Context, _, _ int) ([]model.Pago, int64, error) {
	out := make([]model.Pago, 0, len(r.pagos))
	for _, p := range r.pagos {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPagoRepo) ListByAtencion(_ context.Context, atencionID uuid.UUID) ([]model.Pago, error) {
	var out []model.Pago
	for _, p := range r.pagos {
		if p.AtencionID == atencionID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPagoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.pagos, id)
	return nil
}

var _ repository.PagoRepository = (*stubPagoRepo)(nil)

// stubDispatcher records enqueued jobs instead of pushing them to Redis.
type stubDispatcher struct {
	emails     []interface{}
	cierrePDFs []interface{}
}

func (d *stubDispatcher) EnqueueEmail(_ context.Context, payload interface{}) error {
	d.emails = append(d.emails, payload)
	return nil
}

func (d *stubDispatcher) EnqueueCierrePDF(_ context.Context, payload interface{}) error {
	d.cierrePDFs = append(d.cierrePDFs, payload)
	return nil
}

var _ service.Dispatcher = (*stubDispatcher)(nil)

// stubAuth verifies passwords against a fixed value.
type stubAuth struct {
	password string
}

func (s *stubAuth) Login(_ context.Context, _ dto.LoginRequest) (*dto.LoginResponse, error) {
	return nil, nil
}

func (s *stubAuth) VerificarPassword(_ context.Context, _ string, password string) error {
	if password != s.password {
		return service.ErrPasswordInvalido
	}
	return nil
}

var _ service.AuthService = (*stubAuth)(nil)

// plainHasher stores passwords verbatim so tests skip bcrypt's cost.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != password {
		return errors.New("password mismatch")
	}
	return nil
}

var _ service.PasswordHasher = plainHasher{}

func strPtr(s string) *string { return &s }
