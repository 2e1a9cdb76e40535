// Package services contains the application services of the extractor:
// the token cache (AuthService) and the ride collector (RideService).
package services
