/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: errors.go
Description: Error values returned by analyzer configuration. Data-quality conditions
are never errors; they are recorded as outliers in the result.
*/

package analyzer

import "errors"

var (
	// ErrInvalidState is returned when configuration changes after training began
	ErrInvalidState = errors.New("invalid analyzer state")
	// ErrInvalidArgument is returned for configuration values outside their domain
	ErrInvalidArgument = errors.New("invalid argument")
)
