// Package friendlist provides the friends of one account with their display data.
package friendlist
