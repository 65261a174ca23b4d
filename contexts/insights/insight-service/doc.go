// Package insightservice generates narrative reports and predictive
// analyses over member-directory aggregates. Prompt building is local and
// deterministic; text generation goes through a TextGenerator port backed
// by the Gemini API in production.
package insightservice
