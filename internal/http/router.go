package http

import (
	"net/http"
	"strings"
)

type RouterConfig struct {
	Parishes       *ParishHandler
	Ministers      *MinisterHandler
	Masses         *MassHandler
	FixedSlots     *FixedSlotHandler
	Unavailability *UnavailabilityHandler
	Rosters        *RosterHandler
	Middleware     []func(http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	if cfg.Parishes != nil {
		mux.HandleFunc("/paroquias", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Parishes.List(w, r)
			case http.MethodPost:
				cfg.Parishes.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/paroquias/", func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimPrefix(r.URL.Path, "/paroquias/")
			if id == "" || strings.Contains(id, "/") {
				http.NotFound(w, r)
				return
			}
			ctx := ContextWithParishID(r.Context(), id)
			r = r.WithContext(ctx)
			switch r.Method {
			case http.MethodGet:
				cfg.Parishes.Get(w, r)
			case http.MethodPut:
				cfg.Parishes.Update(w, r)
			case http.MethodDelete:
				cfg.Parishes.Delete(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
			}
		})
	}

	if cfg.Ministers != nil {
		mux.HandleFunc("/ministros", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Ministers.List(w, r)
			case http.MethodPost:
				cfg.Ministers.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/ministros/", func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimPrefix(r.URL.Path, "/ministros/")
			if id == "" || strings.Contains(id, "/") {
				http.NotFound(w, r)
				return
			}
			ctx := ContextWithMinisterID(r.Context(), id)
			r = r.WithContext(ctx)
			switch r.Method {
			case http.MethodGet:
				cfg.Ministers.Get(w, r)
			case http.MethodPut:
				cfg.Ministers.Update(w, r)
			case http.MethodDelete:
				cfg.Ministers.Delete(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
			}
		})
	}

	if cfg.Masses != nil {
		mux.HandleFunc("/missas", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Masses.List(w, r)
			case http.MethodPost:
				cfg.Masses.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/missas/", func(w http.ResponseWriter, r *http.Request) {
			rest := strings.TrimPrefix(r.URL.Path, "/missas/")
			parts := strings.Split(strings.Trim(rest, "/"), "/")
			if len(parts) == 0 || parts[0] == "" {
				http.NotFound(w, r)
				return
			}
			ctx := ContextWithMassID(r.Context(), parts[0])
			r = r.WithContext(ctx)

			switch {
			case len(parts) == 1:
				switch r.Method {
				case http.MethodGet:
					cfg.Masses.Get(w, r)
				case http.MethodPut:
					cfg.Masses.Update(w, r)
				case http.MethodDelete:
					cfg.Masses.Delete(w, r)
				default:
					methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
				}
			case len(parts) == 2 && parts[1] == "escala" && cfg.Rosters != nil:
				switch r.Method {
				case http.MethodGet:
					cfg.Rosters.Roster(w, r)
				case http.MethodPut:
					cfg.Rosters.SetRoster(w, r)
				case http.MethodPost:
					cfg.Rosters.AddAssignment(w, r)
				default:
					methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodPost)
				}
			case len(parts) == 3 && parts[1] == "escala" && parts[2] == "auto" && cfg.Rosters != nil:
				if r.Method != http.MethodPost {
					methodNotAllowed(w, http.MethodPost)
					return
				}
				cfg.Rosters.AutoAssign(w, r)
			default:
				http.NotFound(w, r)
			}
		})
	}

	if cfg.FixedSlots != nil {
		mux.HandleFunc("/horarios-fixos", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.FixedSlots.List(w, r)
			case http.MethodPost:
				cfg.FixedSlots.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/horarios-fixos/", func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimPrefix(r.URL.Path, "/horarios-fixos/")
			if id == "" || strings.Contains(id, "/") {
				http.NotFound(w, r)
				return
			}
			ctx := ContextWithFixedSlotID(r.Context(), id)
			r = r.WithContext(ctx)
			switch r.Method {
			case http.MethodGet:
				cfg.FixedSlots.Get(w, r)
			case http.MethodPut:
				cfg.FixedSlots.Update(w, r)
			case http.MethodDelete:
				cfg.FixedSlots.Delete(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
			}
		})
	}

	if cfg.Unavailability != nil {
		mux.HandleFunc("/indisponibilidades", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Unavailability.List(w, r)
			case http.MethodPost:
				cfg.Unavailability.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/indisponibilidades/", func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimPrefix(r.URL.Path, "/indisponibilidades/")
			if id == "" || strings.Contains(id, "/") {
				http.NotFound(w, r)
				return
			}
			ctx := ContextWithAbsenceID(r.Context(), id)
			r = r.WithContext(ctx)
			switch r.Method {
			case http.MethodGet:
				cfg.Unavailability.Get(w, r)
			case http.MethodDelete:
				cfg.Unavailability.Delete(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodDelete)
			}
		})
	}

	if cfg.Rosters != nil {
		mux.HandleFunc("/gerar-mensal", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Rosters.ExpandMonth(w, r)
		})
		mux.HandleFunc("/estatisticas", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Rosters.Stats(w, r)
		})
		mux.HandleFunc("/escalas/", func(w http.ResponseWriter, r *http.Request) {
			rest := strings.TrimPrefix(r.URL.Path, "/escalas/")
			parts := strings.Split(strings.Trim(rest, "/"), "/")
			if len(parts) == 0 || parts[0] == "" {
				http.NotFound(w, r)
				return
			}

			if parts[0] == "publica" {
				if len(parts) != 2 || parts[1] == "" {
					http.NotFound(w, r)
					return
				}
				if r.Method != http.MethodPost {
					methodNotAllowed(w, http.MethodPost)
					return
				}
				ctx := ContextWithPublicToken(r.Context(), parts[1])
				cfg.Rosters.Confirm(w, r.WithContext(ctx))
				return
			}

			ctx := ContextWithAssignmentID(r.Context(), parts[0])
			r = r.WithContext(ctx)
			switch {
			case len(parts) == 1:
				if r.Method != http.MethodDelete {
					methodNotAllowed(w, http.MethodDelete)
					return
				}
				cfg.Rosters.RemoveAssignment(w, r)
			case len(parts) == 2 && parts[1] == "presenca":
				if r.Method != http.MethodPut {
					methodNotAllowed(w, http.MethodPut)
					return
				}
				cfg.Rosters.SetAttendance(w, r)
			default:
				http.NotFound(w, r)
			}
		})
	}

	if cfg.Masses != nil {
		mux.HandleFunc("/calendario", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Masses.Calendar(w, r)
		})
	}

	var handler http.Handler = mux
	if len(cfg.Middleware) > 0 {
		for i := len(cfg.Middleware) - 1; i >= 0; i-- {
			if cfg.Middleware[i] != nil {
				handler = cfg.Middleware[i](handler)
			}
		}
	}

	return handler
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
