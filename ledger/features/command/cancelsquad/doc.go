// Package cancelsquad implements the host cancelling a pending or active squad.
package cancelsquad
