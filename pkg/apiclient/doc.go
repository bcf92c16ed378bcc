// Package apiclient is a small client for the Events REST API used by the API suites.
//
// Each entity lives under BaseURL/api/<entity> and supports the usual verbs:
//
//	POST   /api/event        Create
//	GET    /api/event        List
//	GET    /api/event/{id}   Get
//	PUT    /api/event/{id}   Update
//	DELETE /api/event/{id}   Delete
//
// Responses are returned with their status code and raw body; when the body is a
// valid envelope (see package envelope) it is decoded as well. Validation failures
// come back as HTTP 422 and are not turned into errors: only transport failures are.
//
// TestData returns the canonical fixture for an entity. RandomTestData fills the
// identifying fields with generated values.
package apiclient
