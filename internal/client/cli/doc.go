// Package cli provides the interactive invoice extractor.
//
// It wires configuration, the token cache, the portal API client, the ride
// collector and the optional archive, then walks a linear sequence of stages:
//
//	AcquireTokens -> UpdateSession -> ResolveIdentity -> ResolveCompany ->
//	PromptPeriod -> CollectRides -> Download
//
// Every stage either yields its value or fails with a *StageError naming it.
// An authorization failure on an authenticated call triggers a single token
// refresh and retry per run. The run ends by waiting for the operator to
// press Enter, whatever the outcome.
package cli
