// Package newsdigest provides a browser-driven news digest pipeline.
// It loads a news section page, extracts article summaries, saves their
// lead images, translates the headlines, and reports words that repeat
// across the translated headlines.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, sqlite/, gemini/).
package newsdigest
