// Package posts resolves blog post slugs into parsed markdown documents.
//
// A Source enumerates the available entries as (identifier, loader) pairs, the
// Resolver matches a requested slug against them and invokes only the matching
// loader, and a FrontMatterParser splits the leading metadata block from the
// markdown body. Every resolution ends in a Result that is Found, NotFound or
// LoadError; nothing is cached between calls.
package posts
