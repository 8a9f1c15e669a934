// Package repositories implements the dual-store persistence layer that
// gives StoryKeeper its local-first behavior.
//
// # Overview
//
// Every entity type (see internal/client/models) gets one generic
// Repository backed by two stores: a durable on-disk store that never fails
// for connectivity reasons, and a remote store talking to the backend.
// Writes land locally first and are pushed to the backend opportunistically;
// reads merge both copies by recency. A deletion log records removals so
// they survive offline periods and replay on the next sync pass.
//
// # Failure Policy
//
// Local store failures abort an operation: they mean disk corruption or a
// programming error, and continuing would lose data. Remote store failures
// are absorbed and logged as warnings: the user may simply be offline, and
// the synchronization service (internal/client/syncer) reconciles the
// backend later.
//
// # Recency
//
// When both stores hold a copy of the same id, the one with the later
// updatedAt wins. Equal timestamps favor the local copy, so an offline edit
// is never silently discarded in favor of an equally old remote one.
//
// # Key Types
//
//   - type Repository: generic dual-store repository for one entity type
//   - type Manager: one Repository per entity type plus the deletion log
//
// # Typical Usage
//
//	m, _ := repositories.NewManager(dataDir, scope, client, logger)
//	_ = m.Notes.Save(ctx, note)
//	one, _ := m.Notes.FindByID(ctx, id)
//	list, _ := m.Notes.FindByProjectID(ctx, projectID)
//	_ = m.Notes.Delete(ctx, id)
package repositories
