// Package middleware groups the fiber middleware mounted in front of the
// variant API.
//
// # Components
//
//   - rayid: tags every request with an X-Ray-ID header and stores it in the
//     request locals, so generation and reconcile logs of one call share an ID.
//   - auth: rejects requests without the configured X-API-Key. An empty key
//     leaves the API open, which is how local runs are usually started.
//
// Both are registered globally in the start command. rayid comes first so that
// rejected requests are traced too. The swagger UI is mounted before auth and
// stays public.
package middleware
