// Package http provides HTTP handlers and middleware for the roster API.
//
// Every route except the parish collection and the public confirmation link
// runs inside a parish scope resolved from a request header by the
// ParishScope middleware. The router exposes the following endpoints:
//   - GET/POST /paroquias, GET/PUT/DELETE /paroquias/{id}: parish bootstrap
//     CRUD exchanging the `parishDTO` payload defined in parish_handler.go.
//   - GET/POST /ministros, GET/PUT/DELETE /ministros/{id}: minister CRUD
//     exchanging the `ministerDTO` payload defined in minister_handler.go.
//   - GET/POST /missas, GET/PUT/DELETE /missas/{id}: mass CRUD exchanging
//     the `massDTO` payload defined in mass_handler.go. GET /missas accepts
//     `inicio` and `fim` date bounds.
//   - GET/PUT/POST /missas/{id}/escala: read, replace, or append to one
//     roster; POST /missas/{id}/escala/auto rebuilds it from the fixed rules
//     and the minister pool.
//   - POST /gerar-mensal: projects the fixed rules onto one month, creating
//     masses and seeding their rosters. Body: {"year","month"}.
//   - GET/POST /horarios-fixos, GET/PUT/DELETE /horarios-fixos/{id}:
//     recurring rule CRUD; null pattern fields act as wildcards.
//   - GET/POST /indisponibilidades, GET/DELETE /indisponibilidades/{id}:
//     minister absence records, filterable by `ministro` and `data`.
//   - DELETE /escalas/{id}, PUT /escalas/{id}/presenca: remove one
//     assignment or record attendance.
//   - POST /escalas/publica/{token}: tokenized confirmation answer, served
//     without a parish scope. Body: {"action":"confirm"|"decline"}.
//   - GET /calendario?ano=&mes=: month calendar with rosters resolved to
//     minister names.
//   - GET /estatisticas: per minister assignment totals, accepting the same
//     `inicio`/`fim` bounds as the mass listing.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
