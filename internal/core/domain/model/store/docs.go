// Package store implements the Store aggregate, the merchant an order is picked up from.
package store
