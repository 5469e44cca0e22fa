package repository

import "campdirectory/internal/query"

// List endpoint descriptions. Only fields named here are visible to query strings.

var ListingCollection = &query.Collection{
	Table:   "listings",
	Columns: "*",
	Fields: map[string]query.Field{
		"id":                        {Column: "id::text", Type: query.String},
		"user":                      {Column: "user_id::text", Type: query.String},
		"name":                      {Column: "name", Type: query.String},
		"slug":                      {Column: "slug", Type: query.String},
		"description":               {Column: "description", Type: query.String},
		"website":                   {Column: "website", Type: query.String},
		"phone":                     {Column: "phone", Type: query.String},
		"email":                     {Column: "email", Type: query.String},
		"address":                   {Column: "address", Type: query.String},
		"location":                  {Type: query.Object},
		"location.formattedAddress": {Column: "formatted_address", Type: query.String},
		"location.city":             {Column: "city", Type: query.String},
		"location.state":            {Column: "state", Type: query.String},
		"location.zipcode":          {Column: "zipcode", Type: query.String},
		"location.country":          {Column: "country", Type: query.String},
		"careers":                   {Column: "careers", Type: query.StringArray},
		"averageRating":             {Column: "average_rating", Type: query.Number},
		"averageCost":               {Column: "average_cost", Type: query.Number},
		"photo":                     {Column: "photo", Type: query.String},
		"housing":                   {Column: "housing", Type: query.Bool},
		"jobAssistance":             {Column: "job_assistance", Type: query.Bool},
		"jobGuarantee":              {Column: "job_guarantee", Type: query.Bool},
		"acceptGi":                  {Column: "accept_gi", Type: query.Bool},
		"createdAt":                 {Column: "created_at", Type: query.Time},
		"courses":                   {Type: query.Object},
	},
	DefaultSort: "-createdAt",
}

var CourseCollection = &query.Collection{
	Table:   "courses",
	Columns: "*",
	Fields: map[string]query.Field{
		"id":                   {Column: "id::text", Type: query.String},
		"title":                {Column: "title", Type: query.String},
		"description":          {Column: "description", Type: query.String},
		"weeks":                {Column: "weeks", Type: query.Number},
		"tuition":              {Column: "tuition", Type: query.Number},
		"minimumSkill":         {Column: "minimum_skill", Type: query.String},
		"scholarshipAvailable": {Column: "scholarship_available", Type: query.Bool},
		"listing":              {Column: "listing_id::text", Type: query.String},
		"user":                 {Column: "user_id::text", Type: query.String},
		"createdAt":            {Column: "created_at", Type: query.Time},
	},
	DefaultSort: "-createdAt",
}

var ReviewCollection = &query.Collection{
	Table:   "reviews",
	Columns: "*",
	Fields: map[string]query.Field{
		"id":        {Column: "id::text", Type: query.String},
		"title":     {Column: "title", Type: query.String},
		"text":      {Column: "text", Type: query.String},
		"rating":    {Column: "rating", Type: query.Number},
		"listing":   {Column: "listing_id::text", Type: query.String},
		"user":      {Column: "user_id::text", Type: query.String},
		"createdAt": {Column: "created_at", Type: query.Time},
	},
	DefaultSort: "-createdAt",
}

// UserCollection never exposes password or reset columns.
var UserCollection = &query.Collection{
	Table:   "users",
	Columns: "id, name, email, role, created_at",
	Fields: map[string]query.Field{
		"id":        {Column: "id::text", Type: query.String},
		"name":      {Column: "name", Type: query.String},
		"email":     {Column: "email", Type: query.String},
		"role":      {Column: "role", Type: query.String},
		"createdAt": {Column: "created_at", Type: query.Time},
	},
	DefaultSort: "-createdAt",
}
