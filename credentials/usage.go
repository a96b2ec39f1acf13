/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

package credentials

import (
	"github.com/MakeNowJust/heredoc/v2"
)

// TelephonyUsage documents how bandwidth.NewClient locates credentials.
var TelephonyUsage = heredoc.Doc(`
	bandwidth.NewClient gathers credentials from the following locations, in order:

	1) Arguments passed when creating the client:

	    client, err := bandwidth.NewClient("u-your-user-id", "t-your-token", "your-secret", nil)

	2) Environment variables:

	    $ export BANDWIDTH_USER_ID=u-your-user-id
	    $ export BANDWIDTH_API_TOKEN=t-your-token
	    $ export BANDWIDTH_API_SECRET=your-secret

	3) A config file named by BANDWIDTH_CONFIG_FILE, or else .bndsdkrc in the
	   current directory:

	    $ export BANDWIDTH_CONFIG_FILE=/home/user/.bndsdkrc
	    $ cat /home/user/.bndsdkrc
	    [catapult]
	    user_id = u-your-user-id
	    token = t-your-token
	    secret = your-secret

	4) Values registered earlier in the process:

	    credentials.SetTelephonyFallback("u-your-user-id", "t-your-token", "your-secret")
`)

// DashboardUsage documents how bandwidth.NewDashboardClient locates credentials.
var DashboardUsage = heredoc.Doc(`
	bandwidth.NewDashboardClient gathers Bandwidth Dashboard credentials from the
	following locations, in order:

	1) Arguments passed when creating the client:

	    client, err := bandwidth.NewDashboardClient("your-account-id", "your-username", "your-password", nil)

	2) Environment variables:

	    $ export BANDWIDTH_ACCOUNT_ID=your-account-id
	    $ export BANDWIDTH_USERNAME=your-username
	    $ export BANDWIDTH_PASSWORD=your-password

	3) A config file named by BANDWIDTH_CONFIG_FILE, or else .bndsdkrc in the
	   current directory:

	    $ export BANDWIDTH_CONFIG_FILE=/home/user/.bndsdkrc
	    $ cat /home/user/.bndsdkrc
	    [catapult]
	    account_id = your-account-id
	    username = your-username
	    password = your-password

	4) Values registered earlier in the process:

	    credentials.SetDashboardFallback("your-account-id", "your-username", "your-password")
	    credentials.SetDashboardEndpoint("https://dashboard.bandwidth.com:443/v1.0/")
`)

const (
	helpMissingTelephonyParams = "creating a client with arguments requires NewClient(userID, token, secret) " +
		"where userID, token and secret are from your Catapult account"
	helpMissingDashboardParams = "creating a dashboard client with arguments requires " +
		"NewDashboardClient(accountID, username, password) where all three are from your Bandwidth Dashboard account"
	helpMissingTelephonyEnv = "if BANDWIDTH_USER_ID is defined in the environment, " +
		"BANDWIDTH_API_TOKEN and BANDWIDTH_API_SECRET must also be defined"
	helpMissingDashboardEnv = "if BANDWIDTH_ACCOUNT_ID is defined in the environment, " +
		"BANDWIDTH_USERNAME and BANDWIDTH_PASSWORD must also be defined"
	helpIncompleteDashboardFallback = "the dashboard account id was registered with SetDashboardFallback " +
		"but the username or password is empty"
	helpConfigFormat = "the config file <%s> is either not formatted correctly or is missing values. " +
		"If that's the wrong config file, make sure BANDWIDTH_CONFIG_FILE is set correctly " +
		"or not set if you're trying to use .bndsdkrc"
	helpConfigFileMissing = "the config file specified: <%s> could not be found. " +
		"If that's the wrong config file, make sure BANDWIDTH_CONFIG_FILE is set correctly " +
		"or not set if you're trying to use .bndsdkrc"
	helpNoConfiguration = "no configuration provided"
)
