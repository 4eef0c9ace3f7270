// Package services provides domain services that operate across aggregates
// in the marketplace system, implementing business logic that doesn't
// naturally belong to a single aggregate root.
//
// The package includes:
//   - RewardCalculator: A pure fold deriving customer reward points from delivered-order history
package services
