// Package model defines core types used throughout prodcat.
//
// # Identity Types
//
//   - ProductID: Globally unique, monotonically allocated product identifier (uint64)
//   - EmptySlot: Sentinel stored in a slot that is transiently vacant
//
// # Data Types
//
//   - Product: Immutable catalog entry with a name and a description
//
// # Collaborators
//
//   - IDAllocator: Source of fresh product identifiers (Sequence is the default)
//   - ContentGenerator: Source of random product names and descriptions
package model
