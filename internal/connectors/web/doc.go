// Package web implements the WebExtractor port over HTTP.
//
// The fetcher rewrites arXiv PDF links to their abstract pages, sends
// mobile browser headers to Zhihu, decodes the page charset to UTF-8 and
// hands the page to the normaliser registry. The record Source is always
// the URL as the user gave it.
package web
