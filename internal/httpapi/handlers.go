package httpapi

import (
	"net/http"

	"github.com/Chitresh-code/aiexplorer-sub002/internal/batch"
	"github.com/Chitresh-code/aiexplorer-sub002/internal/contract"
)

func (h *handler) listPlan(w http.ResponseWriter, r *http.Request) {
	id, err := useCaseID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	entries, err := h.svc.Plan.ListPlan(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.ListResponse[contract.PlanEntryResponse]{
		OK:    true,
		Items: contract.Map(entries, contract.Deref(contract.FromPlanEntry)),
	})
}

func (h *handler) patchPlan(w http.ResponseWriter, r *http.Request) {
	id, err := useCaseID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req contract.PlanPatchRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.svc.Plan.UpsertPlan(r.Context(), req.ToApp(id))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.ListResponse[contract.PlanEntryResponse]{
		OK:    true,
		Items: contract.Map(res.Entries, contract.FromPlanEntry),
	})
}

func (h *handler) listStakeholders(w http.ResponseWriter, r *http.Request) {
	id, err := useCaseID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	list, err := h.svc.Stakeholders.ListStakeholders(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.ListResponse[contract.StakeholderResponse]{
		OK:    true,
		Items: contract.Map(list, contract.Deref(contract.FromStakeholder)),
	})
}

func (h *handler) putStakeholders(w http.ResponseWriter, r *http.Request) {
	id, err := useCaseID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req contract.StakeholderBatchRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.svc.Stakeholders.UpsertStakeholders(r.Context(), req.ToApp(id))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.ListResponse[contract.StakeholderResponse]{
		OK:    true,
		Items: contract.Map(res.Stakeholders, contract.FromStakeholder),
	})
}

// postStakeholder upserts one stakeholder by natural key. A surrogate id in
// the body is ignored here; PATCH is the update-by-id path.
func (h *handler) postStakeholder(w http.ResponseWriter, r *http.Request) {
	h.singleStakeholder(w, r, false)
}

func (h *handler) patchStakeholder(w http.ResponseWriter, r *http.Request) {
	h.singleStakeholder(w, r, true)
}

func (h *handler) singleStakeholder(w http.ResponseWriter, r *http.Request, byID bool) {
	id, err := useCaseID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req contract.StakeholderRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	status := http.StatusOK
	if byID {
		if req.ID <= 0 {
			h.writeError(w, r, batch.Validationf(-1, "id is required"))
			return
		}
	} else {
		req.ID = 0
		status = http.StatusCreated
	}
	res, err := h.svc.Stakeholders.UpsertStakeholders(r.Context(), req.ToApp(id))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, status, contract.ItemResponse[contract.StakeholderResponse]{
		OK:   true,
		Item: contract.FromStakeholder(res.Stakeholders[0]),
	})
}

func (h *handler) listUpdates(w http.ResponseWriter, r *http.Request) {
	id, err := useCaseID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	list, err := h.svc.Updates.ListUpdates(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.ListResponse[contract.UpdateResponse]{
		OK:    true,
		Items: contract.Map(list, contract.Deref(contract.FromUpdate)),
	})
}

func (h *handler) postUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := useCaseID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req contract.UpdateRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	u, err := h.svc.Updates.AddUpdate(r.Context(), req.ToApp(id))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, contract.ItemResponse[contract.UpdateResponse]{OK: true, Item: contract.FromUpdate(*u)})
}

func (h *handler) getPrioritization(w http.ResponseWriter, r *http.Request) {
	id, err := useCaseID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	p, err := h.svc.Prioritize.CurrentPrioritization(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.ItemResponse[contract.PrioritizationResponse]{OK: true, Item: contract.FromPrioritization(*p)})
}

func (h *handler) patchPrioritization(w http.ResponseWriter, r *http.Request) {
	id, err := useCaseID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req contract.PrioritizeRequest
	if err := h.decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.svc.Prioritize.Prioritize(r.Context(), req.ToApp(id))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, contract.ItemResponse[contract.PrioritizationResponse]{
		OK:   true,
		Item: contract.FromPrioritization(res.Prioritization),
	})
}
