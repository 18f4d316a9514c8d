package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearUsuarioRequest struct {
	Nombre          string  `json:"nombre"            validate:"required,min=2,max=100"`
	Email           string  `json:"email"             validate:"required,email"`
	Telefono        *string `json:"telefono"`
	Rol             string  `json:"rol"               validate:"required,oneof=Administrador Barbero Cliente"`
	AccedeAlSistema bool    `json:"accede_al_sistema"`
	// Password is required only when accede_al_sistema is true; the service
	// enforces that cross-field rule.
	Password string `json:"password" validate:"omitempty,min=6"`
}

type ActualizarUsuarioRequest struct {
	Nombre   string  `json:"nombre"   validate:"omitempty,min=2,max=100"`
	Email    string  `json:"email"    validate:"omitempty,email"`
	Telefono *string `json:"telefono"`
	Rol      string  `json:"rol"      validate:"omitempty,oneof=Administrador Barbero Cliente"`
	Password string  `json:"password" validate:"omitempty,min=6"`
}

type ActualizarPerfilRequest struct {
	Nombre   string  `json:"nombre"   validate:"omitempty,min=2,max=100"`
	Telefono *string `json:"telefono"`
	Password string  `json:"password" validate:"omitempty,min=6"`
}

type CambiarEstadoRequest struct {
	Activo bool `json:"activo"`
}

type UsuarioFilter struct {
	Nombre          string
	Email           string
	Rol             string
	SoloActivos     bool
	OrdenarPor      string // nombre | email | fecha
	OrdenDescendente bool
	Page            int
	PageSize        int
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UsuarioResponse struct {
	ID              string  `json:"id"`
	Nombre          string  `json:"nombre"`
	Email           string  `json:"email"`
	Telefono        *string `json:"telefono"`
	Avatar          *string `json:"avatar"`
	Rol             string  `json:"rol"`
	AccedeAlSistema bool    `json:"accede_al_sistema"`
	Activo          bool    `json:"activo"`
}

type UsuarioListResponse struct {
	Usuarios   []UsuarioResponse `json:"usuarios"`
	Pagination Pagination        `json:"pagination"`
}

// Pagination is the shared page envelope returned by every listing endpoint.
type Pagination struct {
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
	Total       int64 `json:"total"`
}
