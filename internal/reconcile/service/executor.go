/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package service

import (
	"context"
	"time"

	"github.com/wso2/mongo-collection-reconciler/internal/reconcile/model"
	"github.com/wso2/mongo-collection-reconciler/internal/reconcile/store"
	syserrors "github.com/wso2/mongo-collection-reconciler/internal/system/errors"
	"github.com/wso2/mongo-collection-reconciler/internal/system/log"
	"go.mongodb.org/mongo-driver/bson"
)

// Executor applies a MergePlan against a live store. It re-reads
// collection state before every destructive step so a plan computed
// against a stale snapshot degrades to unresolved groups instead of
// acting on wrong information. Not safe against concurrent application
// writes; callers run it inside a maintenance window under the run lock.
type Executor struct {
	store  store.CollectionStore
	logger *log.Logger
	states map[string]model.CollectionState
}

func NewExecutor(s store.CollectionStore) *Executor {
	return &Executor{
		store:  s,
		logger: log.GetLogger(),
		states: make(map[string]model.CollectionState),
	}
}

// Apply executes the plan group by group. Document-level copy failures
// are logged and skipped; they never abort the remaining documents or
// other groups. A context cancellation stops cleanly between documents
// or groups, and a re-run recovers the remainder.
func (e *Executor) Apply(ctx context.Context, plan *model.MergePlan, withRenames bool) (*model.ApplySummary, error) {
	summary := &model.ApplySummary{
		RunID:     plan.RunID,
		StartedAt: time.Now().UTC(),
	}
	defer func() {
		summary.FinishedAt = time.Now().UTC()
	}()

	for _, group := range plan.Groups {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if group.Unresolved {
			summary.GroupsUnresolved++
			e.logger.Warn("Skipping unresolved group",
				log.String("reason", group.Reason),
				log.Int("members", len(group.Members)))
			continue
		}
		if err := e.applyGroup(ctx, group, summary); err != nil {
			return summary, err
		}
	}

	if withRenames {
		if err := e.applyRenames(ctx, plan.Advisories, summary); err != nil {
			return summary, err
		}
	}
	return summary, nil
}

func (e *Executor) applyGroup(ctx context.Context, group model.DuplicateGroup, summary *model.ApplySummary) error {
	logger := e.logger.With(log.String("canonical", group.Canonical))

	exists, err := e.store.Exists(ctx, group.Canonical)
	if err != nil {
		return err
	}
	if !exists {
		summary.GroupsUnresolved++
		e.setState(group.Canonical, model.StateUnresolved)
		logger.Warn("Canonical collection disappeared since planning",
			log.String("code", syserrors.CANONICAL_MISSING.Code))
		return nil
	}
	e.setState(group.Canonical, model.StateCanonical)

	groupClean := true
	for _, op := range group.Operations {
		if err := ctx.Err(); err != nil {
			return err
		}
		ok, err := e.applyGroupOperation(ctx, op, group.Canonical, logger, summary)
		if err != nil {
			return err
		}
		if !ok {
			groupClean = false
		}
	}

	if groupClean {
		summary.GroupsResolved++
	} else {
		summary.GroupsUnresolved++
	}
	return nil
}

// applyGroupOperation merges or drops one non-canonical member. The
// bool result reports whether the member was fully resolved; false
// leaves the group counted as unresolved without stopping the run.
func (e *Executor) applyGroupOperation(ctx context.Context, op model.Operation, canonical string, logger *log.Logger, summary *model.ApplySummary) (bool, error) {
	if !e.state(op.From).CanTransition(model.StateMergeSource) {
		// Already dropped within this run; nothing left to do.
		return true, nil
	}
	e.setState(op.From, model.StateMergeSource)

	exists, err := e.store.Exists(ctx, op.From)
	if err != nil {
		return false, err
	}
	if !exists {
		// A previous interrupted run already resolved this member.
		logger.Info("Merge source already gone",
			log.String("collection", op.From),
			log.String("code", syserrors.SOURCE_MISSING.Code))
		e.setState(op.From, model.StateDropped)
		return true, nil
	}

	count, err := e.store.CountDocuments(ctx, op.From)
	if err != nil {
		logger.Error("Failed to re-count merge source",
			log.String("collection", op.From),
			log.String("code", syserrors.COUNT_DOCUMENTS.Code),
			log.Error(err))
		e.setState(op.From, model.StateUnresolved)
		return false, nil
	}

	// The plan may say drop, but documents can have appeared since the
	// snapshot. Always merge whatever is present before dropping.
	if count > 0 {
		target := op.To
		if target == "" {
			// A planned drop whose source gained documents since the
			// snapshot still merges into the group canonical.
			target = canonical
		}
		skipped, copied, err := e.copyDocuments(ctx, op.From, target)
		summary.DocumentsCopied += copied
		summary.DocumentsSkipped += skipped
		if err != nil {
			if ctx.Err() != nil {
				return false, err
			}
			logger.Error("Merge copy pass failed",
				log.String("collection", op.From),
				log.Error(err))
			e.setState(op.From, model.StateUnresolved)
			return false, nil
		}
		if skipped > 0 {
			// Dropping now would lose the skipped documents. Leave the
			// source in place for a follow-up run.
			logger.Warn("Documents skipped; source kept for retry",
				log.String("collection", op.From),
				log.Int64("skipped", skipped))
			e.setState(op.From, model.StateUnresolved)
			return false, nil
		}
	}

	if err := e.store.Drop(ctx, op.From); err != nil {
		logger.Error("Failed to drop merge source",
			log.String("collection", op.From),
			log.String("code", syserrors.DROP_COLLECTION.Code),
			log.Error(err))
		e.setState(op.From, model.StateUnresolved)
		return false, nil
	}
	summary.CollectionsDropped++
	e.setState(op.From, model.StateDropped)
	logger.Info("Merge source dropped", log.String("collection", op.From))
	return true, nil
}

// copyDocuments moves every document from source into target: insert
// with the store-assigned identity stripped, then delete the source
// copy. Removing each document as soon as its insert lands means an
// interrupted run leaves only the uncopied remainder in the source, so
// a re-run never duplicates documents in the target. Individual
// failures are logged with the source collection and document
// reference, then skipped.
func (e *Executor) copyDocuments(ctx context.Context, source, target string) (skipped, copied int64, err error) {
	if e.state(source).CanTransition(model.StateMerging) {
		e.setState(source, model.StateMerging)
	}

	err = e.store.EachDocument(ctx, source, func(doc bson.M) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		docRef := doc["_id"]
		delete(doc, "_id")

		if insertErr := e.store.Insert(ctx, target, doc); insertErr != nil {
			skipped++
			e.logger.Warn("Skipped document during merge",
				log.String("source", source),
				log.String("target", target),
				log.Any("document_id", docRef),
				log.Error(syserrors.NewOperationError(syserrors.COPY_DOCUMENT, insertErr)))
			return nil
		}
		if deleteErr := e.store.DeleteDocument(ctx, source, docRef); deleteErr != nil {
			// The document landed in the target but still sits in the
			// source; counting it as skipped keeps the source alive and
			// flags the run for manual cleanup.
			skipped++
			e.logger.Warn("Copied document could not be removed from source",
				log.String("source", source),
				log.String("target", target),
				log.Any("document_id", docRef),
				log.Error(syserrors.NewOperationError(syserrors.DELETE_DOCUMENT, deleteErr)))
			return nil
		}
		copied++
		return nil
	})
	return skipped, copied, err
}

// applyRenames executes the naming-convention advisories. A target that
// appeared since planning is a conflict; the rename is skipped and
// reported, never forced.
func (e *Executor) applyRenames(ctx context.Context, advisories []model.Operation, summary *model.ApplySummary) error {
	for _, op := range advisories {
		if err := ctx.Err(); err != nil {
			return err
		}
		if op.Kind != model.OpRename {
			continue
		}
		if err := e.store.Rename(ctx, op.From, op.To, false); err != nil {
			summary.RenamesFailed++
			code := syserrors.RENAME_COLLECTION.Code
			if err == store.ErrTargetExists {
				code = syserrors.RENAME_CONFLICT.Code
			}
			e.logger.Warn("Rename not applied",
				log.String("from", op.From),
				log.String("to", op.To),
				log.String("code", code),
				log.Error(err))
			continue
		}
		summary.CollectionsRenamed++
		e.logger.Info("Collection renamed",
			log.String("from", op.From),
			log.String("to", op.To))
	}
	return nil
}

func (e *Executor) state(name string) model.CollectionState {
	if s, ok := e.states[name]; ok {
		return s
	}
	return model.StateUntouched
}

func (e *Executor) setState(name string, next model.CollectionState) {
	if e.state(name).CanTransition(next) {
		e.states[name] = next
	}
}
