// Package services provides the courier recommenders of the dispatch domain.
//
// The package includes:
//   - NearestCourierRecommender: deterministic nearest-to-store selection
//   - FallbackRecommender: runs a primary recommender under a timeout and falls
//     back to a deterministic one on any failure
//
// Recommenders are advisory. They read a dispatch.Request and never mutate state.
package services
