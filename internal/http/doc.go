// Package http serves the portfolio and blog over gin.
//
// Pages:
//   - GET /             profile landing page
//   - GET /blogs        post listing
//   - GET /blogs/:slug  single post
//
// JSON:
//   - GET /api/profile, /api/posts, /api/posts/:slug
//   - GET /healthz
//
// A Found post answers 200, NotFound 404 and LoadError 500 on both surfaces.
package http
