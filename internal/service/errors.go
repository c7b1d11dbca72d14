package service

import "errors"

var (
	// ErrUpstreamFetch means the storefront could not supply products. It is
	// never reported as a successful training run with zero products.
	ErrUpstreamFetch = errors.New("failed to fetch products from storefront")
	// ErrNoProducts is joined with ErrUpstreamFetch when the storefront answered with an empty list.
	ErrNoProducts = errors.New("no products to train on")
	// ErrPersistence wraps knowledge base save failures.
	ErrPersistence = errors.New("failed to persist knowledge base")
	// ErrNotTrained is returned where a knowledge base is required but none exists.
	ErrNotTrained = errors.New("knowledge base has not been trained")

	ErrUnknownBucket = errors.New("unknown recommendation bucket")
	ErrEmptyQuery    = errors.New("search query is empty")
)
