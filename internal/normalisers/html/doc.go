// Package html provides a Normaliser for fetched web pages.
// It extracts the readable article text with a boilerplate-removal pass,
// reads title and date from page metadata, and lets per-site hooks
// (arXiv, Zhihu) override those fields when they find stronger signals.
package html
