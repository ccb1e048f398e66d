// Package dispatch holds the value types exchanged with courier recommenders.
//
// A Request is built from detached copies of an order, its customer, its store
// and the courier fleet. A Recommender answers it with a Recommendation, which
// stays advisory: the caller confirms it through the AssignCourier command.
package dispatch
