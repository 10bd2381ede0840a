// Package http provides the HTTP handlers and middleware for the schedule API.
//
// The router exposes the following endpoints:
//   - GET /sessions, POST /sessions, GET /sessions/{id}, PUT /sessions/{id},
//     DELETE /sessions/{id}: session management. Listing accepts the query
//     parameters `search`, `room`, `attendee`, and `timeOfDay`
//     (morning|afternoon|evening); the filtered cards come back alongside the
//     unfiltered catalog size so clients can tell an empty schedule from an
//     empty match.
//   - POST /sessions/{id}/favorite: flips the favorite flag and returns the
//     new state.
//   - GET /attendees, POST /attendees, PUT /attendees/{id},
//     DELETE /attendees/{id}: attendee directory endpoints.
//   - GET /speakers, POST /speakers, PUT /speakers/{id},
//     DELETE /speakers/{id}: speaker directory endpoints.
//   - GET /rooms, POST /rooms, PUT /rooms/{id}, DELETE /rooms/{id}: room
//     catalog endpoints. Room colors must come from the fixed palette.
//   - GET /stats: catalog counters for the dashboard strip.
//   - GET /export/calendar.ics: the full schedule as an iCalendar feed.
//   - GET /metrics: Prometheus scrape endpoint.
//
// Request and response DTOs live alongside their respective handlers so tests
// and documentation share the same ground truth.
package http
