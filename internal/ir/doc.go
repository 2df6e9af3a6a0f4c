// Package ir provides the data model shared by the ordeal engine, the
// reporters and the run history store.
//
// This package contains type definitions only. All other internal packages
// import ir; ir imports nothing internal. This keeps the model the
// foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Suite, Test and TestCase form a closed set behind the sealed Object
//     interface; consumers type-switch over the three variants
//   - IDs come from one counter per engine and order objects by creation
//   - A Result starts as passed and is only overwritten by a failure
//   - Summary entries are snapshots, never mutated after they are recorded
package ir
