package linkedin

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/auto-applier/internal/browser"
	"github.com/jonathan/auto-applier/internal/types"
)

// scanFieldsJS enumerates the visible form fields of the open apply
// modal in document order and classifies each one from its DOM shape.
// Evaluated in the page; returns a JSON array of descriptors.
const scanFieldsJS = `(() => {
	const groups = document.querySelectorAll('.jobs-easy-apply-content .jobs-easy-apply-form-section__grouping, .jobs-easy-apply-content .fb-dash-form-element');
	const fields = [];
	const labelOf = (group) => {
		const label = group.querySelector('label, legend');
		return label ? label.innerText.trim() : group.innerText.trim().split('\n')[0];
	};
	const errorOf = (group) => {
		const err = group.querySelector('.artdeco-inline-feedback--error');
		return err ? err.innerText.trim() : '';
	};
	groups.forEach((group) => {
		const upload = group.querySelector('input[type="file"]');
		if (upload) {
			fields.push({id: upload.id, label: labelOf(group), kind: 'upload', options: [], required: upload.required, error: errorOf(group)});
			return;
		}
		const select = group.querySelector('select');
		if (select) {
			fields.push({id: select.id, label: labelOf(group), kind: 'select',
				options: Array.from(select.options).map(o => o.text.trim()),
				required: select.required, error: errorOf(group)});
			return;
		}
		const radios = group.querySelectorAll('.fb-text-selectable__option, input[type="radio"]');
		if (radios.length > 0) {
			const opts = [];
			group.querySelectorAll('.fb-text-selectable__option label, input[type="radio"] + label').forEach(l => opts.push(l.innerText.trim()));
			fields.push({id: radios[0].id || '', label: labelOf(group), kind: 'select', options: opts,
				required: false, error: errorOf(group)});
			return;
		}
		const checkbox = group.querySelector('input[type="checkbox"]');
		if (checkbox) {
			fields.push({id: checkbox.id, label: labelOf(group), kind: 'checkbox', options: [], required: checkbox.required, error: errorOf(group)});
			return;
		}
		const datepicker = group.querySelector('.artdeco-datepicker__input');
		if (datepicker) {
			fields.push({id: datepicker.id, label: labelOf(group), kind: 'date', options: [], required: false, error: errorOf(group)});
			return;
		}
		const textarea = group.querySelector('textarea');
		if (textarea) {
			fields.push({id: textarea.id, label: labelOf(group), kind: 'textarea', options: [], required: textarea.required, error: errorOf(group)});
			return;
		}
		const input = group.querySelector('input');
		if (input) {
			const numeric = input.type === 'number' || (input.id || '').toLowerCase().includes('numeric');
			fields.push({id: input.id, label: labelOf(group), kind: numeric ? 'numeric' : 'text', options: [], required: input.required, error: errorOf(group)});
		}
	});
	return fields;
})()`

// scanTilesJS extracts the posting tiles of the current results page in
// list order.
const scanTilesJS = `(() => {
	const tiles = document.querySelectorAll('.jobs-search-results__list-item, .scaffold-layout__list-container li.jobs-search-results__list-item');
	const jobs = [];
	tiles.forEach((tile) => {
		const titleEl = tile.querySelector('.job-card-list__title, a.job-card-container__link');
		const companyEl = tile.querySelector('.job-card-container__primary-description, .job-card-container__company-name');
		const locationEl = tile.querySelector('.job-card-container__metadata-item');
		const applyEl = tile.querySelector('.job-card-container__apply-method');
		jobs.push({
			title: titleEl ? titleEl.innerText.trim() : '',
			link: titleEl && titleEl.href ? titleEl.href.split('?')[0] : '',
			company: companyEl ? companyEl.innerText.trim() : '',
			location: locationEl ? locationEl.innerText.trim() : '',
			applyMethod: applyEl ? applyEl.innerText.trim() : 'Applied',
		});
	});
	return jobs;
})()`

type fieldDescriptor struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Kind     string   `json:"kind"`
	Options  []string `json:"options"`
	Required bool     `json:"required"`
	Error    string   `json:"error"`
}

type tileDescriptor struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	ApplyMethod string `json:"applyMethod"`
}

// scanFields reads the open form's field descriptors in DOM order.
func scanFields(ctx context.Context, d browser.Driver) ([]types.Field, error) {
	var descriptors []fieldDescriptor
	if err := d.Evaluate(ctx, scanFieldsJS, &descriptors); err != nil {
		return nil, fmt.Errorf("failed to scan form fields: %w", err)
	}

	fields := make([]types.Field, 0, len(descriptors))
	for _, desc := range descriptors {
		kind := types.FieldKind(desc.Kind)
		if kind == types.FieldTextArea && looksLikeSummary(desc.Label) {
			kind = types.FieldSummary
		}
		fields = append(fields, types.Field{
			ID:        desc.ID,
			Label:     desc.Label,
			Kind:      kind,
			Options:   desc.Options,
			Required:  desc.Required,
			ErrorText: desc.Error,
		})
	}
	return fields, nil
}

func looksLikeSummary(label string) bool {
	lower := strings.ToLower(label)
	return strings.Contains(lower, "summary") || strings.Contains(lower, "tell us about yourself")
}

// scanTiles reads the posting tiles of the current results page.
func scanTiles(ctx context.Context, d browser.Driver) ([]*types.Job, error) {
	var descriptors []tileDescriptor
	if err := d.Evaluate(ctx, scanTilesJS, &descriptors); err != nil {
		return nil, fmt.Errorf("failed to scan job tiles: %w", err)
	}

	jobs := make([]*types.Job, 0, len(descriptors))
	for _, desc := range descriptors {
		if desc.Title == "" && desc.Link == "" {
			continue
		}
		jobs = append(jobs, &types.Job{
			ID:          uuid.NewString(),
			Title:       desc.Title,
			Company:     desc.Company,
			Location:    desc.Location,
			Link:        desc.Link,
			ApplyMethod: desc.ApplyMethod,
		})
	}
	return jobs, nil
}
