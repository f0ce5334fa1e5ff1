package assethandler

import (
	"context"
	"sort"
	"strings"

	"iga-backend/db"
	assetstore "iga-backend/lib/asset/store"
	"iga-backend/lib/external-services/okta/oktaclient"
	settingsstore "iga-backend/lib/settings/store"
	"iga-backend/lib/utils/helpers"
	"iga-backend/models"
	assetapimodels "iga-backend/models/api/asset"
	dbmodels "iga-backend/models/db"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(data assetapimodels.AssetData) (id string, err error)
	Get(id string) (*dbmodels.Asset, error)
	Update(id string, data assetapimodels.AssetData) error
	List() ([]dbmodels.Asset, error)
	// Mine lists assets the caller owns and therefore reviews.
	Mine(email string) ([]dbmodels.Asset, error)
	// Groups previews the asset's Okta groups with members and refreshes member_count.
	Groups(ctx context.Context, id string) (assetapimodels.AssetGroupsResult, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB, oktaclient.DefaultFactory)
}

func NewInstance(DB *gorm.DB, oktaFactory oktaclient.Factory) Provider {
	return impl{
		store:         assetstore.NewInstance(DB),
		settingsStore: settingsstore.NewInstance(DB),
		oktaFactory:   oktaFactory,
	}
}

type impl struct {
	store         assetstore.Provider
	settingsStore settingsstore.Provider
	oktaFactory   oktaclient.Factory
}

func (i impl) Create(data assetapimodels.AssetData) (string, error) {
	if err := data.Validate(); err != nil {
		return "", err
	}
	id, err := i.store.Create(data.ToModel())
	if err != nil {
		return "", err
	}
	log.WithField("asset_id", id).WithField("asset_name", data.Name).Info("asset created")
	return id, nil
}

func (i impl) Get(id string) (*dbmodels.Asset, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, models.NotFoundError("asset %s not found", id)
	}
	return rec, nil
}

func (i impl) Update(id string, data assetapimodels.AssetData) error {
	if err := data.Validate(); err != nil {
		return err
	}
	if _, err := i.Get(id); err != nil {
		return err
	}
	return i.store.Update(id, data.ToUpdateMap())
}

func (i impl) List() ([]dbmodels.Asset, error) {
	return i.store.List()
}

func (i impl) Mine(email string) ([]dbmodels.Asset, error) {
	email = helpers.NormalizeEmail(email)
	if email == "" {
		return nil, models.ValidationError("owner email is required")
	}
	return i.store.ListByOwner(email)
}

func (i impl) Groups(ctx context.Context, id string) (result assetapimodels.AssetGroupsResult, err error) {
	asset, err := i.Get(id)
	if err != nil {
		return result, err
	}
	if !asset.HasOktaApp() {
		return result, models.ValidationError("asset %q is not linked to an okta app", asset.Name)
	}
	settings, err := i.settingsStore.Get()
	if err != nil {
		return result, err
	}
	if !settings.HasOkta() {
		return result, models.ConfigurationError("okta domain and api token must be configured")
	}
	client := i.oktaFactory(*settings)
	groups, err := client.ListAppGroups(ctx, strings.TrimSpace(*asset.OktaID))
	if err != nil {
		return result, err
	}
	unique := map[string]bool{}
	result = assetapimodels.AssetGroupsResult{
		AssetID: asset.ID,
		Groups:  make([]assetapimodels.AssetGroupView, 0, len(groups)),
	}
	for _, group := range groups {
		users, err := client.ListGroupUsers(ctx, group.ID)
		if err != nil {
			return assetapimodels.AssetGroupsResult{}, err
		}
		members := make([]string, 0, len(users))
		for _, user := range users {
			email := helpers.NormalizeEmail(user.ResolvedEmail())
			if email == "" {
				continue
			}
			members = append(members, email)
			unique[email] = true
		}
		sort.Strings(members)
		result.Groups = append(result.Groups, assetapimodels.AssetGroupView{
			GroupID:    group.ID,
			GroupName:  group.DisplayName(),
			Privileged: asset.PrivilegedGroupIDs.Contains(group.ID),
			Members:    members,
		})
	}
	result.MemberCount = len(unique)
	if err = i.store.SetMemberCount(asset.ID, result.MemberCount); err != nil {
		return result, err
	}
	return result, nil
}
