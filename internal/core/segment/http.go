// Copyright (c) 2026 Cliplet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package segment

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/cliplet/internal/platform/middleware"
	requestutil "github.com/taibuivan/cliplet/internal/platform/request"
	"github.com/taibuivan/cliplet/internal/platform/respond"
	"github.com/taibuivan/cliplet/internal/platform/validate"
	"github.com/taibuivan/cliplet/pkg/pagination"
	"github.com/taibuivan/cliplet/pkg/query"
)

// # Definitions & Constructors

// Handler implements segment-related HTTP endpoints.
//
// # Scope
//
// Public discovery (browse, search, popular, recent), single-segment
// reads, and the authenticated authoring surface (create, update, delete,
// like, unlike, my-segments).
type Handler struct {
	segmentService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{segmentService: service}
}

// Routes returns a [chi.Router] configured with segment-specific routes.
//
// # Endpoints
//   - GET    /             : Browse public segments (paginated).
//   - GET    /popular      : Top public segments by views, then likes.
//   - GET    /recent       : Newest public segments.
//   - GET    /search       : Full-text search (paginated).
//   - GET    /{id}         : Single segment (counts the view).
//   - POST   /             : Create a segment.
//   - GET    /my-segments  : The caller's own segments (paginated).
//   - PUT    /{id}         : Update a segment.
//   - DELETE /{id}         : Delete a segment.
//   - POST   /{id}/like    : Increment likes.
//   - POST   /{id}/unlike  : Decrement likes.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public discovery endpoints (public segments only)
	router.Get("/", handler.list)
	router.Get("/popular", handler.popular)
	router.Get("/recent", handler.recent)
	router.Get("/search", handler.search)
	router.Get("/{id}", handler.get)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth())
		r.Post("/", handler.create)
		r.Get("/my-segments", handler.mySegments)
		r.Put("/{id}", handler.update)
		r.Delete("/{id}", handler.delete)
		r.Post("/{id}/like", handler.like)
		r.Post("/{id}/unlike", handler.unlike)
	})

	return router
}

// # Request Payloads

type createSegmentRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	VideoURL    string   `json:"videoUrl"`
	StartTime   float64  `json:"startTime"`
	EndTime     float64  `json:"endTime"`
	Scenes      []Scene  `json:"scenes"`
	Tags        []string `json:"tags"`
	IsPublic    *bool    `json:"isPublic"`
}

type updateSegmentRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	VideoURL    *string   `json:"videoUrl"`
	StartTime   *float64  `json:"startTime"`
	EndTime     *float64  `json:"endTime"`
	Scenes      *[]Scene  `json:"scenes"`
	Tags        *[]string `json:"tags"`
	IsPublic    *bool     `json:"isPublic"`
}

// listOptionsFromRequest assembles pagination, tag filters, and sorting
// from the query string.
func listOptionsFromRequest(request *http.Request) ListOptions {
	params := pagination.FromRequest(request)
	values := request.URL.Query()

	return ListOptions{
		Page:   params.Page,
		Limit:  params.Limit,
		Tags:   query.StringSlice(values.Get("tags")),
		SortBy: values.Get("sortBy"),
		Order:  values.Get("order"),
	}
}

// discoveryLimit parses the optional limit parameter of the popular and
// recent lists, defaulting to [PopularListSize] and clamping to
// [pagination.MaxLimit].
func discoveryLimit(request *http.Request) int {
	limit, err := strconv.Atoi(request.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		return PopularListSize
	}
	if limit > pagination.MaxLimit {
		return pagination.MaxLimit
	}
	return limit
}

// listPayload wraps a page of segments with its pagination metadata.
func listPayload(segments []*Segment, options ListOptions, total int) map[string]any {
	if segments == nil {
		segments = []*Segment{}
	}
	return map[string]any{
		FieldSegments:   segments,
		FieldPagination: pagination.NewMeta(options.Page, options.Limit, total),
	}
}

// # Discovery Handlers

/*
list returns a page of public segments.

GET /api/segments?page=&limit=&tags=&sortBy=&order=

Response:
  - 200: {segments, pagination}
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	options := listOptionsFromRequest(request)

	segments, total, err := handler.segmentService.Browse(request.Context(), options)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Segments retrieved", listPayload(segments, options, total))
}

/*
popular returns the most-viewed public segments.

GET /api/segments/popular?limit=

Response:
  - 200: {segments}
*/
func (handler *Handler) popular(writer http.ResponseWriter, request *http.Request) {
	segments, err := handler.segmentService.Popular(request.Context(), discoveryLimit(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if segments == nil {
		segments = []*Segment{}
	}
	respond.OK(writer, "Popular segments retrieved", map[string]any{FieldSegments: segments})
}

/*
recent returns the newest public segments.

GET /api/segments/recent?limit=

Response:
  - 200: {segments}
*/
func (handler *Handler) recent(writer http.ResponseWriter, request *http.Request) {
	segments, err := handler.segmentService.Recent(request.Context(), discoveryLimit(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if segments == nil {
		segments = []*Segment{}
	}
	respond.OK(writer, "Recent segments retrieved", map[string]any{FieldSegments: segments})
}

/*
search runs a full-text query over public segments.

GET /api/segments/search?q=&page=&limit=

Response:
  - 200: {segments, pagination}
  - 400: ErrValidation: Missing search query
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	searchQuery := strings.TrimSpace(request.URL.Query().Get(FieldQuery))
	if searchQuery == "" {
		respond.Error(writer, request, validate.RequiredError(FieldQuery, "Search query is required"))
		return
	}

	options := listOptionsFromRequest(request)

	segments, total, err := handler.segmentService.Search(request.Context(), searchQuery, options)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Search results retrieved", listPayload(segments, options, total))
}

/*
get returns a single segment and counts the view.

GET /api/segments/{id}

Response:
  - 200: {segment}
  - 403: ErrForbidden: Private segment, caller is not the owner
  - 404: ErrNotFound: Unknown segment
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")
	caller := requestutil.Identity(request)

	segment, err := handler.segmentService.Get(request.Context(), caller, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Segment retrieved", map[string]any{FieldSegment: segment})
}

// # Authoring Handlers

/*
create publishes a new segment owned by the caller.

POST /api/segments

Request:
  - Body: createSegmentRequest

Response:
  - 201: {segment}
  - 400: ErrValidation: Rule violations (time range, scenes, tags, URL)
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createSegmentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	segment, err := handler.segmentService.Create(request.Context(), userID, CreateInput{
		Title:       input.Title,
		Description: input.Description,
		VideoURL:    input.VideoURL,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Scenes:      input.Scenes,
		Tags:        input.Tags,
		IsPublic:    input.IsPublic,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Segment created successfully", map[string]any{FieldSegment: segment})
}

/*
mySegments returns a page of everything the caller owns.

GET /api/segments/my-segments?page=&limit=&tags=&sortBy=&order=

Response:
  - 200: {segments, pagination}
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) mySegments(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	options := listOptionsFromRequest(request)

	segments, total, err := handler.segmentService.MySegments(request.Context(), userID, options)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Your segments retrieved", listPayload(segments, options, total))
}

/*
update applies a partial update to an owned segment.

PUT /api/segments/{id}

Request:
  - Body: updateSegmentRequest (only present fields are touched)

Response:
  - 200: {segment}
  - 400: ErrValidation: Rule violations after the overlay
  - 403: ErrForbidden: Caller does not own the segment
  - 404: ErrNotFound: Unknown segment
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateSegmentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	segment, err := handler.segmentService.Update(request.Context(), caller, requestutil.ID(request, "id"), UpdateInput{
		Title:       input.Title,
		Description: input.Description,
		VideoURL:    input.VideoURL,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Scenes:      input.Scenes,
		Tags:        input.Tags,
		IsPublic:    input.IsPublic,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Segment updated successfully", map[string]any{FieldSegment: segment})
}

/*
delete removes an owned segment permanently.

DELETE /api/segments/{id}

Response:
  - 200: Confirmation message
  - 403: ErrForbidden: Caller does not own the segment
  - 404: ErrNotFound: Unknown segment
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.segmentService.Delete(request.Context(), caller, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Segment deleted successfully", nil)
}

// # Like Handlers

/*
like increments the like counter of a visible segment.

POST /api/segments/{id}/like

Response:
  - 200: {likes}
  - 404: ErrNotFound: Unknown segment
*/
func (handler *Handler) like(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	likes, err := handler.segmentService.Like(request.Context(), caller, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Segment liked", map[string]any{FieldLikes: likes})
}

/*
unlike decrements the like counter of a visible segment.

POST /api/segments/{id}/unlike

Response:
  - 200: {likes}
  - 404: ErrNotFound: Unknown segment
*/
func (handler *Handler) unlike(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	likes, err := handler.segmentService.Unlike(request.Context(), caller, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Segment unliked", map[string]any{FieldLikes: likes})
}
