// Package snoo turns raw reddit URLs into typed content references and
// reconstructs threaded discussions from flat scraped comment data.
// It resolves any recognized reddit URL shape (post, comment permalink,
// user profile, subreddit listing, frontpage, shortlink) into a
// ContentRef, and rebuilds the reply hierarchy of a post's comments
// from the flat records an extractor produces.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g. goquery/,
// http/, sqlite/).
package snoo
