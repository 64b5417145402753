// Package common holds helpers shared by the service packages, currently
// the single-instance guard built on process listing.
package common
