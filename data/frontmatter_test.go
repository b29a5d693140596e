package data

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/ak0r/zero-theme/content"
	"github.com/ak0r/zero-theme/data/document"
	"github.com/ak0r/zero-theme/images"
)

func frontMatter(t *testing.T, source string) map[string]interface{} {
	t.Helper()

	m := make(map[string]interface{})
	require.NoError(t, yaml.Unmarshal([]byte(source), &m))

	return m
}

func TestPopulateFromYAMLMetaData(t *testing.T) {
	t.Parallel()

	index := images.NewIndex("/vault")
	index.Add("posts/trip/attachments/cover.jpg", "/vault/posts/trip/attachments/cover.jpg")

	doc := &document.Document{
		VaultPath:      "posts/trip/index.md",
		Classification: content.Classify("posts/trip/index.md"),
	}

	m := frontMatter(t, `
title: A Trip
description: Somewhere nice
date: 2024-03-01
lastModified: 2024-03-05 10:30
tags:
  - travel
  - Travel
  - places: [Lisbon]
image: [[cover.jpg]]
imageAlt: The coast
draft: true
featured: true
series: Trips
seriesOrder: 2
order: 7
`)

	require.NoError(t, populateFromYAMLMetaData(doc, m, index))

	assert.Equal(t, "A Trip", doc.Title)
	assert.Equal(t, "Somewhere nice", doc.Description)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local), doc.Date)
	assert.Equal(t, time.Date(2024, time.March, 5, 10, 30, 0, 0, time.Local), doc.LastModified)
	assert.True(t, doc.Draft)
	assert.True(t, doc.Featured)
	assert.Equal(t, "Trips", doc.Series)
	assert.Equal(t, 2, doc.SeriesOrder)
	assert.Equal(t, 7, doc.Order)
	assert.True(t, doc.HasFrontMatter)

	require.Len(t, doc.Tags, 2)
	assert.Equal(t, "travel", doc.Tags[0].Raw)
	assert.Equal(t, document.Tag{Raw: "Lisbon", Category: "places"}, doc.Tags[1])

	require.NotNil(t, doc.Image)
	assert.Equal(t, images.Embedded, doc.Image.Kind)
	assert.Equal(t, "/posts/trip/attachments/cover.jpg", doc.Image.URL)
	assert.Equal(t, "The coast", doc.ImageAlt)

	assert.NotEqual(t, uuid.Nil, doc.GUID)
}

func TestPopulateFromYAMLMetaDataDefaults(t *testing.T) {
	t.Parallel()

	doc := &document.Document{VaultPath: "posts/a.md", Classification: content.Classify("posts/a.md")}
	require.NoError(t, populateFromYAMLMetaData(doc, nil, nil))

	assert.False(t, doc.HasFrontMatter)
	assert.True(t, doc.Date.IsZero())
	assert.Nil(t, doc.Image)

	again := &document.Document{VaultPath: "posts/a.md"}
	require.NoError(t, populateFromYAMLMetaData(again, nil, nil))
	assert.Equal(t, doc.GUID, again.GUID, "derived guids are stable")

	guid := uuid.New()
	withGUID := &document.Document{VaultPath: "posts/a.md"}
	require.NoError(t, populateFromYAMLMetaData(withGUID, map[string]interface{}{"guid": guid.String()}, nil))
	assert.Equal(t, guid, withGUID.GUID)
}

func TestPopulateFromYAMLMetaDataErrors(t *testing.T) {
	t.Parallel()

	doc := &document.Document{VaultPath: "posts/a.md"}
	err := populateFromYAMLMetaData(doc, map[string]interface{}{"date": "yesterday"}, nil)
	assert.Error(t, err)
}

func TestCoverImageForms(t *testing.T) {
	t.Parallel()

	index := images.NewIndex("/vault")
	index.Add("posts/attachments/c.png", "/vault/posts/attachments/c.png")

	doc := &document.Document{VaultPath: "posts/a.md", Classification: content.Classify("posts/a.md")}

	tests := []struct {
		raw  string
		kind images.Kind
		url  string
	}{
		{"c.png", images.Embedded, "/posts/attachments/c.png"},
		{"[[c.png]]", images.Embedded, "/posts/attachments/c.png"},
		{"attachments/c.png", images.Embedded, "/posts/attachments/c.png"},
		{"https://example.com/c.png", images.Remote, "https://example.com/c.png"},
		{"/attachments/logo.svg", images.StaticAsset, "/attachments/logo.svg"},
	}

	for _, tt := range tests {
		resolved, ok := resolveCover(doc, tt.raw, index)
		require.True(t, ok, tt.raw)
		assert.Equal(t, tt.kind, resolved.Kind, tt.raw)
		assert.Equal(t, tt.url, resolved.URL, tt.raw)
	}
}
