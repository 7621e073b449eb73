package api

import (
	"net/url"
	"strings"

	"github.com/fiji-flo/basket/types"
)

const (
	fieldEmail          = "email"
	fieldNewsletters    = "newsletters"
	fieldFormat         = "format"
	fieldCountry        = "country"
	fieldLang           = "lang"
	fieldOptin          = "optin"
	fieldOptout         = "optout"
	fieldSourceUrl      = "source_url"
	fieldTriggerWelcome = "trigger_welcome"
	fieldSync           = "sync"
	fieldSupertoken     = "supertoken"
)

// joinNewsletters renders newsletter ids the way basket expects them:
// one comma-separated string, no spaces.
func joinNewsletters(newsletters []string) string {
	return strings.Join(newsletters, ",")
}

func subscribeForm(req types.SubscribeRequest, flags types.FlagStyle) url.Values {
	form := url.Values{}
	form.Set(fieldEmail, req.Email)
	form.Set(fieldNewsletters, joinNewsletters(req.Newsletters))

	if opts := req.Options; opts != nil {
		setString(form, fieldFormat, string(opts.Format))
		setString(form, fieldCountry, opts.Country)
		setString(form, fieldLang, opts.Lang)
		setFlag(form, fieldOptin, opts.Optin, flags)
		setString(form, fieldSourceUrl, opts.SourceUrl)
		setFlag(form, fieldTriggerWelcome, opts.TriggerWelcome, flags)
		setFlag(form, fieldSync, opts.Sync, flags)
	}
	return form
}

func unsubscribeForm(req types.UnsubscribeRequest, flags types.FlagStyle) url.Values {
	form := url.Values{}
	form.Set(fieldNewsletters, joinNewsletters(req.Newsletters))
	form.Set(fieldOptout, flags.Format(req.Optout))
	return form
}

func updateUserForm(req types.UpdateUserRequest, flags types.FlagStyle) url.Values {
	form := url.Values{}
	setString(form, fieldEmail, req.Email)

	if opts := req.Options; opts != nil {
		setString(form, fieldFormat, string(opts.Format))
		setString(form, fieldCountry, opts.Country)
		setString(form, fieldLang, opts.Lang)
		setFlag(form, fieldOptin, opts.Optin, flags)
		if opts.Newsletters != nil {
			form.Set(fieldNewsletters, joinNewsletters(opts.Newsletters))
		}
	}
	return form
}

func setString(form url.Values, key, value string) {
	if value != "" {
		form.Set(key, value)
	}
}

func setFlag(form url.Values, key string, value *bool, flags types.FlagStyle) {
	if value != nil {
		form.Set(key, flags.Format(*value))
	}
}
