// Package customer implements the Customer aggregate and its single active order rule.
package customer
