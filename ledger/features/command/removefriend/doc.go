// Package removefriend implements either side ending a friendship.
package removefriend
